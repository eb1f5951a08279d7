package ledger

import (
	"time"

	"github.com/arledger/backend/internal/domain/shared"
	"github.com/arledger/backend/internal/domain/shared/valueobject"
)

// Payment represents money received against a single invoice.
// Payments are append-only: the validated write path creates them one at a
// time and nothing in the core ever mutates or deletes one.
type Payment struct {
	ID          int64             `json:"payment_id"`
	InvoiceID   int64             `json:"invoice_id"`
	PaymentDate time.Time         `json:"payment_date"`
	Amount      valueobject.Money `json:"amount"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewPayment creates a payment row for the given invoice.
// Amount positivity is enforced here; the cap against the invoice's
// outstanding balance is the invoice's job (see Invoice.ApplyPayment).
func NewPayment(invoiceID int64, paymentDate time.Time, amount valueobject.Money) (*Payment, error) {
	if invoiceID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	return &Payment{
		InvoiceID:   invoiceID,
		PaymentDate: paymentDate,
		Amount:      amount,
		CreatedAt:   time.Now(),
	}, nil
}
