package ledger

import (
	"time"

	"github.com/arledger/backend/internal/domain/shared"
)

// Customer represents a party that owes money on invoices.
// Deleting a customer cascades to its invoices and their payments.
type Customer struct {
	ID        int64     `json:"customer_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomer creates a new customer
func NewCustomer(name string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot exceed 200 characters")
	}
	now := time.Now()
	return &Customer{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
