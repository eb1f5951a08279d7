package handler

import (
	"context"
	"time"

	ledgerapp "github.com/arledger/backend/internal/application/ledger"
	"github.com/arledger/backend/internal/domain/shared/valueobject"
	"github.com/arledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PaymentRecorder records a payment against an invoice
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, req ledgerapp.RecordPaymentRequest) (*ledgerapp.RecordPaymentResult, error)
}

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService PaymentRecorder
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService PaymentRecorder) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// RecordPaymentRequest represents a request to record a payment.
// Amount carries no binding rules on purpose: zero and negative amounts
// must reach the invoice so the rejection quotes the outstanding balance.
type RecordPaymentRequest struct {
	InvoiceID   int64             `json:"invoice_id" binding:"required,gt=0"`
	Amount      valueobject.Money `json:"amount"`
	PaymentDate string            `json:"payment_date" binding:"required,datetime=2006-01-02"`
}

// Create records a payment against an invoice. The payment is accepted
// only if it does not push the invoice's paid total past its amount.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	paymentDate, _ := time.ParseInLocation(ledgerapp.DateLayout, req.PaymentDate, time.UTC)

	result, err := h.paymentService.RecordPayment(c.Request.Context(), ledgerapp.RecordPaymentRequest{
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result)
}
