package ledger

import (
	"context"
	"time"
)

// InvoiceFilter narrows invoice listings. All fields are optional;
// the date range is inclusive on both ends and applies to the invoice date.
type InvoiceFilter struct {
	CustomerID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	// FindAll returns all customers ordered by name ascending,
	// ties broken by ID ascending.
	FindAll(ctx context.Context) ([]Customer, error)

	// FindByID returns the customer or shared.ErrNotFound
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// Save inserts or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete removes a customer, cascading to its invoices and their payments
	Delete(ctx context.Context, id int64) error
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	// FindByID returns the invoice with its payments loaded,
	// or shared.ErrNotFound
	FindByID(ctx context.Context, id int64) (*Invoice, error)

	// FindAll returns invoices matching the filter, ordered by ID descending,
	// with customer and payments loaded in the same snapshot.
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// Save inserts or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice, cascading to its payments
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository defines the validated write path for payments
type PaymentRepository interface {
	// RecordForInvoice runs apply against the invoice inside one transaction
	// while holding a write lock on the invoice row, then persists the payment
	// apply returns. Concurrent writers on the same invoice serialize here, so
	// the outstanding check and the insert are never interleaved. Returns a
	// NOT_FOUND domain error if the invoice does not exist; any error from
	// apply rolls the transaction back with no partial row persisted.
	RecordForInvoice(ctx context.Context, invoiceID int64, apply func(invoice *Invoice) (*Payment, error)) (*Payment, error)

	// FindByInvoice returns the payments for one invoice, oldest first
	FindByInvoice(ctx context.Context, invoiceID int64) ([]Payment, error)
}
