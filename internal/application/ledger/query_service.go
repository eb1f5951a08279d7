package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/arledger/backend/internal/domain/ledger"
	"github.com/arledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerQueryService computes invoice listings, debtor rankings and portfolio
// KPIs from the current ledger snapshot. Nothing is cached between calls;
// every query reflects the latest committed state.
type LedgerQueryService struct {
	customerRepo ledger.CustomerRepository
	invoiceRepo  ledger.InvoiceRepository
	logger       *zap.Logger
	now          func() time.Time
}

// QueryOption configures a LedgerQueryService
type QueryOption func(*LedgerQueryService)

// WithClock overrides the wall clock, used by tests to pin "today"
func WithClock(now func() time.Time) QueryOption {
	return func(s *LedgerQueryService) {
		s.now = now
	}
}

// NewLedgerQueryService creates a new LedgerQueryService
func NewLedgerQueryService(
	customerRepo ledger.CustomerRepository,
	invoiceRepo ledger.InvoiceRepository,
	logger *zap.Logger,
	opts ...QueryOption,
) *LedgerQueryService {
	s := &LedgerQueryService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		logger:       logger.Named("ledger_query"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCustomers returns all customers, name ascending with ID as tie-break
func (s *LedgerQueryService) ListCustomers(ctx context.Context) ([]CustomerDTO, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	result := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		result[i] = CustomerDTO{CustomerID: c.ID, Name: c.Name}
	}
	return result, nil
}

// ListInvoices returns invoices matching the filter, newest first, each joined
// with its derived totals and aging bucket. Fully paid invoices report the
// "Paid" bucket regardless of due date age.
func (s *LedgerQueryService) ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]InvoiceDTO, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter.toDomain())
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	today := s.now()
	result := make([]InvoiceDTO, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]

		outstanding, err := inv.Outstanding()
		if err != nil {
			s.logger.Error("ledger invariant violated",
				zap.Int64("invoice_id", inv.ID),
				zap.Error(err))
			return nil, err
		}
		bucket, err := inv.AgingBucketAsOf(today)
		if err != nil {
			return nil, err
		}

		var customerName string
		if inv.Customer != nil {
			customerName = inv.Customer.Name
		}

		result = append(result, InvoiceDTO{
			InvoiceID:    inv.ID,
			CustomerName: customerName,
			Amount:       inv.Amount,
			TotalPaid:    inv.TotalPaid(),
			Outstanding:  outstanding,
			InvoiceDate:  inv.InvoiceDate.Format(DateLayout),
			DueDate:      inv.DueDate.Format(DateLayout),
			AgingBucket:  bucket.String(),
		})
	}
	return result, nil
}

// topCustomerLimit caps the debtor ranking for the dashboard
const topCustomerLimit = 5

// TopOutstandingCustomers groups invoices by customer, sums outstanding
// balances and returns at most five customers, highest debt first.
// Ties are broken by customer ID ascending for determinism.
func (s *LedgerQueryService) TopOutstandingCustomers(ctx context.Context) ([]TopCustomerDTO, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, ledger.InvoiceFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	totals := make(map[int64]*TopCustomerDTO)
	for i := range invoices {
		inv := &invoices[i]
		outstanding, err := inv.Outstanding()
		if err != nil {
			s.logger.Error("ledger invariant violated",
				zap.Int64("invoice_id", inv.ID),
				zap.Error(err))
			return nil, err
		}

		entry, ok := totals[inv.CustomerID]
		if !ok {
			var name string
			if inv.Customer != nil {
				name = inv.Customer.Name
			}
			entry = &TopCustomerDTO{
				CustomerID:       inv.CustomerID,
				Name:             name,
				TotalOutstanding: valueobject.ZeroMoney(),
			}
			totals[inv.CustomerID] = entry
		}
		entry.TotalOutstanding = entry.TotalOutstanding.Add(outstanding)
	}

	ranking := make([]TopCustomerDTO, 0, len(totals))
	for _, entry := range totals {
		ranking = append(ranking, *entry)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if !ranking[i].TotalOutstanding.Equals(ranking[j].TotalOutstanding) {
			return ranking[i].TotalOutstanding.GreaterThan(ranking[j].TotalOutstanding)
		}
		return ranking[i].CustomerID < ranking[j].CustomerID
	})

	if len(ranking) > topCustomerLimit {
		ranking = ranking[:topCustomerLimit]
	}
	return ranking, nil
}

// KPIs computes the portfolio-wide dashboard figures from one ledger snapshot
func (s *LedgerQueryService) KPIs(ctx context.Context) (*KPIsDTO, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, ledger.InvoiceFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	today := s.now()
	totalInvoiced := valueobject.ZeroMoney()
	totalReceived := valueobject.ZeroMoney()
	totalOutstanding := valueobject.ZeroMoney()
	overdueOutstanding := valueobject.ZeroMoney()

	for i := range invoices {
		inv := &invoices[i]
		totalInvoiced = totalInvoiced.Add(inv.Amount)
		totalReceived = totalReceived.Add(inv.TotalPaid())

		outstanding, err := inv.Outstanding()
		if err != nil {
			s.logger.Error("ledger invariant violated",
				zap.Int64("invoice_id", inv.ID),
				zap.Error(err))
			return nil, err
		}
		totalOutstanding = totalOutstanding.Add(outstanding)

		if outstanding.IsPositive() && ledger.IsOverdue(inv.DueDate, today) {
			overdueOutstanding = overdueOutstanding.Add(outstanding)
		}
	}

	percentOverdue := 0.0
	if totalOutstanding.IsPositive() {
		pct := overdueOutstanding.Amount().
			Div(totalOutstanding.Amount()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		percentOverdue = pct.InexactFloat64()
	}

	return &KPIsDTO{
		TotalInvoiced:    totalInvoiced,
		TotalReceived:    totalReceived,
		TotalOutstanding: totalOutstanding,
		PercentOverdue:   percentOverdue,
	}, nil
}
