package persistence

import (
	"context"
	"time"

	"github.com/arledger/backend/internal/domain/shared/valueobject"
	"github.com/arledger/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDemoData loads a small demo ledger for local development.
// It is idempotent: a database that already has customers is left alone.
func SeedDemoData(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.CustomerModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Demo data skipped, customers already present", zap.Int64("customers", count))
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	dayOfMonth := func(day int) time.Time {
		return time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, time.UTC)
	}
	money := func(n int64) valueobject.Money {
		return valueobject.NewMoneyFromInt(n)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customers := []*models.CustomerModel{
			{Name: "ACME Corp"},
			{Name: "Globex LLC"},
			{Name: "Initech"},
		}
		for _, c := range customers {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}
		acme, globex, initech := customers[0], customers[1], customers[2]

		invoices := []*models.InvoiceModel{
			{CustomerID: acme.ID, InvoiceDate: dayOfMonth(1), DueDate: dayOfMonth(15), Amount: money(10000)},
			{CustomerID: acme.ID, InvoiceDate: dayOfMonth(5), DueDate: dayOfMonth(20), Amount: money(4500)},
			{CustomerID: globex.ID, InvoiceDate: dayOfMonth(2), DueDate: dayOfMonth(10), Amount: money(7000)},
			{CustomerID: initech.ID, InvoiceDate: dayOfMonth(3), DueDate: dayOfMonth(25), Amount: money(9000)},
		}
		for _, inv := range invoices {
			if err := tx.Create(inv).Error; err != nil {
				return err
			}
		}

		payments := []*models.PaymentModel{
			{InvoiceID: invoices[0].ID, PaymentDate: today, Amount: money(2500)},
			{InvoiceID: invoices[2].ID, PaymentDate: today, Amount: money(1000)},
		}
		for _, p := range payments {
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		log.Info("Demo data seeded",
			zap.Int("customers", len(customers)),
			zap.Int("invoices", len(invoices)),
			zap.Int("payments", len(payments)),
		)
		return nil
	})
}
