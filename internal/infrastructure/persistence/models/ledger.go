package models

import (
	"time"

	"github.com/arledger/backend/internal/domain/ledger"
	"github.com/arledger/backend/internal/domain/shared/valueobject"
)

// CustomerModel is the persistence model for the Customer entity.
type CustomerModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	Name      string         `gorm:"type:varchar(200);not null"`
	Invoices  []InvoiceModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *ledger.Customer {
	return &ledger.Customer{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CustomerModelFromDomain builds a persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *ledger.Customer) *CustomerModel {
	return &CustomerModel{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	ID          int64             `gorm:"primaryKey;autoIncrement"`
	CustomerID  int64             `gorm:"not null;index"`
	Customer    *CustomerModel    `gorm:"foreignKey:CustomerID"`
	InvoiceDate time.Time         `gorm:"type:date;not null"`
	DueDate     time.Time         `gorm:"type:date;not null;index"`
	Amount      valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Payments    []PaymentModel    `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"not null"`
	UpdatedAt   time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity,
// including any loaded customer and payments.
func (m *InvoiceModel) ToDomain() *ledger.Invoice {
	inv := &ledger.Invoice{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		InvoiceDate: m.InvoiceDate,
		DueDate:     m.DueDate,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Customer != nil {
		inv.Customer = m.Customer.ToDomain()
	}
	if m.Payments != nil {
		inv.Payments = make([]ledger.Payment, len(m.Payments))
		for i := range m.Payments {
			inv.Payments[i] = *m.Payments[i].ToDomain()
		}
	}
	return inv
}

// InvoiceModelFromDomain builds a persistence model from a domain Invoice entity.
// Associations are not copied; payments go through their own write path.
func InvoiceModelFromDomain(inv *ledger.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:          inv.ID,
		CustomerID:  inv.CustomerID,
		InvoiceDate: inv.InvoiceDate,
		DueDate:     inv.DueDate,
		Amount:      inv.Amount,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// PaymentModel is the persistence model for the Payment entity.
type PaymentModel struct {
	ID          int64             `gorm:"primaryKey;autoIncrement"`
	InvoiceID   int64             `gorm:"not null;index"`
	PaymentDate time.Time         `gorm:"type:date;not null"`
	Amount      valueobject.Money `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		PaymentDate: m.PaymentDate,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// PaymentModelFromDomain builds a persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	return &PaymentModel{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		CreatedAt:   p.CreatedAt,
	}
}
