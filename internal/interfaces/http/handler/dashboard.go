package handler

import (
	"context"

	ledgerapp "github.com/arledger/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// DashboardQueryService provides the aggregated figures behind the dashboard
type DashboardQueryService interface {
	TopOutstandingCustomers(ctx context.Context) ([]ledgerapp.TopCustomerDTO, error)
	KPIs(ctx context.Context) (*ledgerapp.KPIsDTO, error)
}

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	BaseHandler
	queryService DashboardQueryService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(queryService DashboardQueryService) *DashboardHandler {
	return &DashboardHandler{
		queryService: queryService,
	}
}

// TopCustomers returns the five customers with the highest outstanding totals
func (h *DashboardHandler) TopCustomers(c *gin.Context) {
	customers, err := h.queryService.TopOutstandingCustomers(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customers)
}

// KPIs returns the portfolio-wide totals and the overdue percentage
func (h *DashboardHandler) KPIs(c *gin.Context) {
	kpis, err := h.queryService.KPIs(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, kpis)
}
