package ledger

import (
	"context"
	"time"

	"github.com/arledger/backend/internal/domain/ledger"
	"github.com/arledger/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// PaymentService is the validated write path for payments. Every payment
// passes through the invoice's outstanding-balance check while the store
// holds a write lock on the invoice row, so two concurrent payments can never
// both be accepted when only one fits under the cap.
type PaymentService struct {
	paymentRepo ledger.PaymentRepository
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo ledger.PaymentRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		logger:      logger.Named("payment"),
	}
}

// RecordPaymentRequest is a validated payment attempt
type RecordPaymentRequest struct {
	InvoiceID   int64
	Amount      valueobject.Money
	PaymentDate time.Time
}

// RecordPaymentResult identifies the created payment
type RecordPaymentResult struct {
	PaymentID int64 `json:"payment_id"`
}

// RecordPayment appends one payment to the invoice's ledger, or fails with
// NOT_FOUND / INVALID_AMOUNT without persisting anything.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	payment, err := s.paymentRepo.RecordForInvoice(ctx, req.InvoiceID, func(inv *ledger.Invoice) (*ledger.Payment, error) {
		return inv.ApplyPayment(req.Amount, req.PaymentDate)
	})
	if err != nil {
		s.logger.Warn("payment rejected",
			zap.Int64("invoice_id", req.InvoiceID),
			zap.String("amount", req.Amount.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("invoice_id", payment.InvoiceID),
		zap.String("amount", payment.Amount.String()))

	return &RecordPaymentResult{PaymentID: payment.ID}, nil
}
