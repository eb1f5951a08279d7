package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/arledger/backend/internal/domain/ledger"
	"github.com/arledger/backend/internal/domain/shared"
	"github.com/arledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements ledger.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// RecordForInvoice loads the invoice with its payments inside a transaction,
// runs apply against it, and persists the payment apply returns. On Postgres
// the invoice row is locked with SELECT FOR UPDATE so concurrent writers on
// the same invoice serialize; SQLite serializes writers at the database level.
// Any error from apply rolls the transaction back with nothing persisted.
func (r *GormPaymentRepository) RecordForInvoice(ctx context.Context, invoiceID int64, apply func(invoice *ledger.Invoice) (*ledger.Payment, error)) (*ledger.Payment, error) {
	var recorded *ledger.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Preload("Payments", paymentsOldestFirst)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var model models.InvoiceModel
		if err := query.First(&model, "id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Invoice %d not found", invoiceID))
			}
			return err
		}

		payment, err := apply(model.ToDomain())
		if err != nil {
			return err
		}

		paymentModel := models.PaymentModelFromDomain(payment)
		if err := tx.Create(paymentModel).Error; err != nil {
			return err
		}

		payment.ID = paymentModel.ID
		payment.CreatedAt = paymentModel.CreatedAt
		recorded = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

// FindByInvoice returns the payments for one invoice, oldest first
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, invoiceID int64) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("id ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]ledger.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}
