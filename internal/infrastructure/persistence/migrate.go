package persistence

import (
	"github.com/arledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the ledger tables from the GORM models.
// Used for the sqlite driver; postgres schemas come from cmd/migrate.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CustomerModel{},
		&models.InvoiceModel{},
		&models.PaymentModel{},
	)
}
