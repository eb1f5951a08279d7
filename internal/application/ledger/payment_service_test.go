package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	domain "github.com/arledger/backend/internal/domain/ledger"
	"github.com/arledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePaymentStore mimics the locked read-then-write path of the real store:
// apply runs against the held invoice and the payment is "inserted" only when
// apply succeeds.
type fakePaymentStore struct {
	invoices      map[int64]*domain.Invoice
	nextPaymentID int64
}

func newFakePaymentStore(invoices ...*domain.Invoice) *fakePaymentStore {
	s := &fakePaymentStore{invoices: make(map[int64]*domain.Invoice)}
	for _, inv := range invoices {
		s.invoices[inv.ID] = inv
	}
	return s
}

func (s *fakePaymentStore) RecordForInvoice(ctx context.Context, invoiceID int64, apply func(*domain.Invoice) (*domain.Payment, error)) (*domain.Payment, error) {
	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Invoice %d not found", invoiceID))
	}
	payment, err := apply(inv)
	if err != nil {
		return nil, err
	}
	s.nextPaymentID++
	payment.ID = s.nextPaymentID
	return payment, nil
}

func (s *fakePaymentStore) FindByInvoice(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return inv.Payments, nil
}

func paymentInvoice(t *testing.T, id int64, amount string, paid ...string) *domain.Invoice {
	t.Helper()
	inv := invoiceFixture(t, id, 1, "ACME Corp", amount, testToday, paid...)
	return &inv
}

func TestPaymentService_RecordPayment(t *testing.T) {
	paymentDate := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)

	t.Run("unknown invoice fails with NOT_FOUND", func(t *testing.T) {
		service := NewPaymentService(newFakePaymentStore(), zap.NewNop())

		_, err := service.RecordPayment(context.Background(), RecordPaymentRequest{
			InvoiceID:   999,
			Amount:      mustMoney(t, "100.00"),
			PaymentDate: paymentDate,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Contains(t, domainErr.Message, "999")
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		store := newFakePaymentStore(paymentInvoice(t, 1, "7000.00"))
		service := NewPaymentService(store, zap.NewNop())

		for _, amount := range []string{"0.00", "-10.00"} {
			_, err := service.RecordPayment(context.Background(), RecordPaymentRequest{
				InvoiceID:   1,
				Amount:      mustMoney(t, amount),
				PaymentDate: paymentDate,
			})
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
		}
	})

	t.Run("rejects amount above outstanding with the balance in the message", func(t *testing.T) {
		store := newFakePaymentStore(paymentInvoice(t, 1, "7000.00", "1000.00"))
		service := NewPaymentService(store, zap.NewNop())

		_, err := service.RecordPayment(context.Background(), RecordPaymentRequest{
			InvoiceID:   1,
			Amount:      mustMoney(t, "6000.01"),
			PaymentDate: paymentDate,
		})

		require.Error(t, err)
		assert.Equal(t, "Invalid amount. Outstanding is 6000.00", err.Error())

		// nothing persisted
		payments, findErr := store.FindByInvoice(context.Background(), 1)
		require.NoError(t, findErr)
		assert.Len(t, payments, 1)
	})

	t.Run("accepts exact outstanding and settles the invoice", func(t *testing.T) {
		inv := paymentInvoice(t, 1, "7000.00", "1000.00")
		store := newFakePaymentStore(inv)
		service := NewPaymentService(store, zap.NewNop())

		result, err := service.RecordPayment(context.Background(), RecordPaymentRequest{
			InvoiceID:   1,
			Amount:      mustMoney(t, "6000.00"),
			PaymentDate: paymentDate,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.PaymentID)

		outstanding, err := inv.Outstanding()
		require.NoError(t, err)
		assert.True(t, outstanding.IsZero())

		bucket, err := inv.AgingBucketAsOf(testToday.AddDate(0, 0, 100))
		require.NoError(t, err)
		assert.Equal(t, domain.BucketPaid, bucket)
	})

	t.Run("accepts partial payment", func(t *testing.T) {
		inv := paymentInvoice(t, 1, "10000.00")
		store := newFakePaymentStore(inv)
		service := NewPaymentService(store, zap.NewNop())

		result, err := service.RecordPayment(context.Background(), RecordPaymentRequest{
			InvoiceID:   1,
			Amount:      mustMoney(t, "2500.00"),
			PaymentDate: paymentDate,
		})

		require.NoError(t, err)
		assert.NotZero(t, result.PaymentID)
		assert.Equal(t, "2500.00", inv.TotalPaid().String())

		outstanding, err := inv.Outstanding()
		require.NoError(t, err)
		assert.Equal(t, "7500.00", outstanding.String())
	})

	t.Run("sequential payments respect the running balance", func(t *testing.T) {
		inv := paymentInvoice(t, 1, "50.00")
		store := newFakePaymentStore(inv)
		service := NewPaymentService(store, zap.NewNop())

		for _, amount := range []string{"20.00", "20.00", "10.00"} {
			_, err := service.RecordPayment(context.Background(), RecordPaymentRequest{
				InvoiceID:   1,
				Amount:      mustMoney(t, amount),
				PaymentDate: paymentDate,
			})
			require.NoError(t, err)
		}

		// invoice is settled; one more cent must bounce
		_, err := service.RecordPayment(context.Background(), RecordPaymentRequest{
			InvoiceID:   1,
			Amount:      mustMoney(t, "0.01"),
			PaymentDate: paymentDate,
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid amount. Outstanding is 0.00", err.Error())
	})
}
