package ledger

import (
	"time"

	"github.com/arledger/backend/internal/domain/ledger"
	"github.com/arledger/backend/internal/domain/shared/valueobject"
)

// DateLayout is the calendar-date representation used at every boundary:
// year-month-day, no time component, no timezone.
const DateLayout = time.DateOnly

// CustomerDTO is a customer row for listings
type CustomerDTO struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
}

// InvoiceDTO is an invoice row joined with its derived figures
type InvoiceDTO struct {
	InvoiceID    int64             `json:"invoice_id"`
	CustomerName string            `json:"customer_name"`
	Amount       valueobject.Money `json:"amount"`
	TotalPaid    valueobject.Money `json:"total_paid"`
	Outstanding  valueobject.Money `json:"outstanding"`
	InvoiceDate  string            `json:"invoice_date"`
	DueDate      string            `json:"due_date"`
	AgingBucket  string            `json:"aging_bucket"`
}

// TopCustomerDTO is one entry of the top-outstanding-customers ranking
type TopCustomerDTO struct {
	CustomerID       int64             `json:"customer_id"`
	Name             string            `json:"name"`
	TotalOutstanding valueobject.Money `json:"total_outstanding"`
}

// KPIsDTO aggregates the portfolio-wide dashboard figures
type KPIsDTO struct {
	TotalInvoiced    valueobject.Money `json:"total_invoiced"`
	TotalReceived    valueobject.Money `json:"total_received"`
	TotalOutstanding valueobject.Money `json:"total_outstanding"`
	PercentOverdue   float64           `json:"percent_overdue"`
}

// InvoiceListFilter carries optional listing filters into the query service
type InvoiceListFilter struct {
	CustomerID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

func (f InvoiceListFilter) toDomain() ledger.InvoiceFilter {
	return ledger.InvoiceFilter{
		CustomerID: f.CustomerID,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
	}
}
