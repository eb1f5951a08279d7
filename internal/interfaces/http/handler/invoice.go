package handler

import (
	"context"
	"time"

	ledgerapp "github.com/arledger/backend/internal/application/ledger"
	"github.com/arledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InvoiceLister lists invoices with their derived balance figures
type InvoiceLister interface {
	ListInvoices(ctx context.Context, filter ledgerapp.InvoiceListFilter) ([]ledgerapp.InvoiceDTO, error)
}

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	queryService InvoiceLister
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(queryService InvoiceLister) *InvoiceHandler {
	return &InvoiceHandler{
		queryService: queryService,
	}
}

// ListInvoicesRequest carries the optional invoice listing filters.
// Dates are calendar days; the range is inclusive on both ends.
type ListInvoicesRequest struct {
	CustomerID *int64 `form:"customer_id" binding:"omitempty,gt=0"`
	Start      string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	End        string `form:"end" binding:"omitempty,datetime=2006-01-02"`
}

// List returns invoices newest first, optionally filtered by customer
// and invoice date range
func (h *InvoiceHandler) List(c *gin.Context) {
	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := ledgerapp.InvoiceListFilter{CustomerID: req.CustomerID}
	if req.Start != "" {
		start, _ := time.ParseInLocation(ledgerapp.DateLayout, req.Start, time.UTC)
		filter.StartDate = &start
	}
	if req.End != "" {
		end, _ := time.ParseInLocation(ledgerapp.DateLayout, req.End, time.UTC)
		filter.EndDate = &end
	}

	invoices, err := h.queryService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoices)
}
