package persistence

import (
	"context"
	"errors"

	"github.com/arledger/backend/internal/domain/ledger"
	"github.com/arledger/backend/internal/domain/shared"
	"github.com/arledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements ledger.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID with customer and payments loaded
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id int64) (*ledger.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Payments", paymentsOldestFirst).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns invoices matching the filter, newest first, with
// customer and payments loaded
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter ledger.InvoiceFilter) ([]ledger.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Preload("Customer").
		Preload("Payments", paymentsOldestFirst)
	query = applyInvoiceFilter(query, filter)

	if err := query.Order("id DESC").Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]ledger.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices, nil
}

// Save inserts or updates an invoice and writes the assigned ID back
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *ledger.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	invoice.ID = model.ID
	invoice.CreatedAt = model.CreatedAt
	invoice.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes an invoice. Its payments go with it via the
// ON DELETE CASCADE constraint.
func (r *GormInvoiceRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyInvoiceFilter narrows an invoice query. The date range is
// inclusive on both ends and applies to the invoice date.
func applyInvoiceFilter(query *gorm.DB, filter ledger.InvoiceFilter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.StartDate != nil {
		query = query.Where("invoice_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("invoice_date <= ?", *filter.EndDate)
	}
	return query
}

// paymentsOldestFirst keeps preloaded payments in insertion order
func paymentsOldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("payments.id ASC")
}
