package handler

import (
	"context"

	ledgerapp "github.com/arledger/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// CustomerLister lists the customers known to the ledger
type CustomerLister interface {
	ListCustomers(ctx context.Context) ([]ledgerapp.CustomerDTO, error)
}

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	queryService CustomerLister
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(queryService CustomerLister) *CustomerHandler {
	return &CustomerHandler{
		queryService: queryService,
	}
}

// List returns all customers ordered by name
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.queryService.ListCustomers(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customers)
}
