package persistence

import (
	"testing"
	"time"

	"github.com/arledger/backend/internal/domain/shared/valueobject"
	"github.com/arledger/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupLedgerTestDB opens an in-memory SQLite database with the ledger
// schema migrated and foreign keys on, so cascades behave like Postgres.
func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// ":memory:" gives every pooled connection its own database,
	// so the pool must stay at a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	err = db.AutoMigrate(
		&models.CustomerModel{},
		&models.InvoiceModel{},
		&models.PaymentModel{},
	)
	require.NoError(t, err)

	return db
}

func mustCreateCustomer(t *testing.T, db *gorm.DB, name string) *models.CustomerModel {
	t.Helper()
	c := &models.CustomerModel{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func mustCreateInvoice(t *testing.T, db *gorm.DB, customerID int64, invoiceDate, dueDate time.Time, amount int64) *models.InvoiceModel {
	t.Helper()
	inv := &models.InvoiceModel{
		CustomerID:  customerID,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Amount:      valueobject.NewMoneyFromInt(amount),
	}
	require.NoError(t, db.Create(inv).Error)
	return inv
}

func mustCreatePayment(t *testing.T, db *gorm.DB, invoiceID int64, paymentDate time.Time, amount int64) *models.PaymentModel {
	t.Helper()
	p := &models.PaymentModel{
		InvoiceID:   invoiceID,
		PaymentDate: paymentDate,
		Amount:      valueobject.NewMoneyFromInt(amount),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, value)
	require.NoError(t, err)
	return d
}
