package ledger

import (
	"fmt"
	"time"

	"github.com/arledger/backend/internal/domain/shared"
	"github.com/arledger/backend/internal/domain/shared/valueobject"
)

// Invoice represents a bill issued to a customer. It owns its payments;
// the face amount never changes once the invoice is created, so the paid and
// outstanding figures are always derived from the payment rows, never stored.
type Invoice struct {
	ID          int64             `json:"invoice_id"`
	CustomerID  int64             `json:"customer_id"`
	Customer    *Customer         `json:"customer,omitempty"`
	InvoiceDate time.Time         `json:"invoice_date"`
	DueDate     time.Time         `json:"due_date"`
	Amount      valueobject.Money `json:"amount"`
	Payments    []Payment         `json:"payments,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewInvoice creates a new invoice for a customer
func NewInvoice(customerID int64, invoiceDate, dueDate time.Time, amount valueobject.Money) (*Invoice, error) {
	if customerID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}
	now := time.Now()
	return &Invoice{
		CustomerID:  customerID,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Amount:      amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TotalPaid sums the amounts of the invoice's payments, zero when none exist.
// Exact decimal arithmetic throughout.
func (inv *Invoice) TotalPaid() valueobject.Money {
	total := valueobject.ZeroMoney()
	for _, p := range inv.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Outstanding returns the face amount minus the sum of recorded payments.
// A negative result means a payment slipped past validation; that is a defect
// in the write path, so it surfaces as an invariant violation rather than
// being clamped to zero.
func (inv *Invoice) Outstanding() (valueobject.Money, error) {
	outstanding := inv.Amount.Sub(inv.TotalPaid())
	if outstanding.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVARIANT_VIOLATION",
			fmt.Sprintf("Invoice %d has negative outstanding balance %s", inv.ID, outstanding.String()))
	}
	return outstanding, nil
}

// AgingBucketAsOf returns the invoice's aging bucket at the given date.
// Fully paid invoices report BucketPaid regardless of due date age.
func (inv *Invoice) AgingBucketAsOf(asOf time.Time) (AgingBucket, error) {
	outstanding, err := inv.Outstanding()
	if err != nil {
		return "", err
	}
	if outstanding.IsZero() {
		return BucketPaid, nil
	}
	return ComputeAgingBucket(inv.DueDate, asOf), nil
}

// ValidatePayment checks a prospective payment against the current balance.
// Rejects non-positive amounts and amounts above the outstanding balance;
// paying the outstanding balance exactly is allowed.
func (inv *Invoice) ValidatePayment(amount valueobject.Money) error {
	outstanding, err := inv.Outstanding()
	if err != nil {
		return err
	}
	if !amount.IsPositive() || amount.GreaterThan(outstanding) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Invalid amount. Outstanding is %s", outstanding.String()))
	}
	return nil
}

// ApplyPayment validates and appends a payment to the invoice.
// The returned payment has no ID yet; the store assigns one on insert.
func (inv *Invoice) ApplyPayment(amount valueobject.Money, paymentDate time.Time) (*Payment, error) {
	if err := inv.ValidatePayment(amount); err != nil {
		return nil, err
	}
	payment, err := NewPayment(inv.ID, paymentDate, amount)
	if err != nil {
		return nil, err
	}
	inv.Payments = append(inv.Payments, *payment)
	inv.UpdatedAt = time.Now()
	return payment, nil
}
