// Package integration exercises the full HTTP stack against a real
// sqlite database: middleware, routing, handlers, services, and the
// GORM repositories underneath them.
package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ledgerapp "github.com/arledger/backend/internal/application/ledger"
	"github.com/arledger/backend/internal/infrastructure/logger"
	"github.com/arledger/backend/internal/infrastructure/persistence"
	"github.com/arledger/backend/internal/interfaces/http/dto"
	"github.com/arledger/backend/internal/interfaces/http/handler"
	"github.com/arledger/backend/internal/interfaces/http/middleware"
	"github.com/arledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type invoiceRow struct {
	InvoiceID    int64   `json:"invoice_id"`
	CustomerName string  `json:"customer_name"`
	Amount       float64 `json:"amount"`
	TotalPaid    float64 `json:"total_paid"`
	Outstanding  float64 `json:"outstanding"`
	InvoiceDate  string  `json:"invoice_date"`
	DueDate      string  `json:"due_date"`
	AgingBucket  string  `json:"aging_bucket"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// ":memory:" gives every pooled connection its own database,
	// so the pool must stay at a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, persistence.AutoMigrate(db))

	log := zap.NewNop()
	require.NoError(t, persistence.SeedDemoData(context.Background(), db, log))

	customerRepo := persistence.NewGormCustomerRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)

	queryService := ledgerapp.NewLedgerQueryService(customerRepo, invoiceRepo, log)
	paymentService := ledgerapp.NewPaymentService(paymentRepo, log)

	customerHandler := handler.NewCustomerHandler(queryService)
	invoiceHandler := handler.NewInvoiceHandler(queryService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	dashboardHandler := handler.NewDashboardHandler(queryService)

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	ledgerRoutes := router.NewDomainGroup("ledger", "/ledger").
		GET("/customers", customerHandler.List).
		GET("/invoices", invoiceHandler.List).
		POST("/payments", paymentHandler.Create)

	dashboardRoutes := router.NewDomainGroup("dashboard", "/dashboard").
		GET("/top-customers", dashboardHandler.TopCustomers).
		GET("/kpis", dashboardHandler.KPIs)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(ledgerRoutes).
		Register(dashboardRoutes).
		Setup()

	return engine
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)

	var data T
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	return data
}

func TestListCustomersSortedByName(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "GET", "/api/v1/ledger/customers", "")
	require.Equal(t, http.StatusOK, w.Code)

	customers := decodeData[[]map[string]any](t, w)
	require.Len(t, customers, 3)
	assert.Equal(t, "ACME Corp", customers[0]["name"])
	assert.Equal(t, "Globex LLC", customers[1]["name"])
	assert.Equal(t, "Initech", customers[2]["name"])
}

func TestListInvoicesNewestFirstWithDerivedFigures(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "GET", "/api/v1/ledger/invoices", "")
	require.Equal(t, http.StatusOK, w.Code)

	invoices := decodeData[[]invoiceRow](t, w)
	require.Len(t, invoices, 4)

	// Newest first
	for i := 1; i < len(invoices); i++ {
		assert.Greater(t, invoices[i-1].InvoiceID, invoices[i].InvoiceID)
	}

	byID := map[int64]invoiceRow{}
	for _, inv := range invoices {
		byID[inv.InvoiceID] = inv
	}

	assert.Equal(t, 10000.0, byID[1].Amount)
	assert.Equal(t, 2500.0, byID[1].TotalPaid)
	assert.Equal(t, 7500.0, byID[1].Outstanding)
	assert.Equal(t, "ACME Corp", byID[1].CustomerName)

	assert.Equal(t, 0.0, byID[2].TotalPaid)
	assert.Equal(t, 4500.0, byID[2].Outstanding)

	assert.Equal(t, 1000.0, byID[3].TotalPaid)
	assert.Equal(t, 6000.0, byID[3].Outstanding)
	assert.Equal(t, "Globex LLC", byID[3].CustomerName)

	assert.Equal(t, 9000.0, byID[4].Outstanding)
	assert.Equal(t, "Initech", byID[4].CustomerName)
}

func TestListInvoicesFilteredByCustomer(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "GET", "/api/v1/ledger/invoices?customer_id=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	invoices := decodeData[[]invoiceRow](t, w)
	require.Len(t, invoices, 2)
	for _, inv := range invoices {
		assert.Equal(t, "ACME Corp", inv.CustomerName)
	}
}

func TestListInvoicesDateRangeIsInclusive(t *testing.T) {
	engine := newTestServer(t)

	all := decodeData[[]invoiceRow](t, doRequest(engine, "GET", "/api/v1/ledger/invoices", ""))
	require.Len(t, all, 4)

	var first invoiceRow
	for _, inv := range all {
		if inv.InvoiceID == 1 {
			first = inv
		}
	}

	path := fmt.Sprintf("/api/v1/ledger/invoices?start=%s&end=%s", first.InvoiceDate, first.InvoiceDate)
	w := doRequest(engine, "GET", path, "")
	require.Equal(t, http.StatusOK, w.Code)

	filtered := decodeData[[]invoiceRow](t, w)
	require.NotEmpty(t, filtered)
	for _, inv := range filtered {
		assert.Equal(t, first.InvoiceDate, inv.InvoiceDate)
	}
}

func TestListInvoicesRejectsMalformedDate(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "GET", "/api/v1/ledger/invoices?start=2026/01/01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid date format, expected YYYY-MM-DD")
}

func TestRecordPaymentFlow(t *testing.T) {
	engine := newTestServer(t)

	// Invoice 2 starts with 4500 outstanding
	w := doRequest(engine, "POST", "/api/v1/ledger/payments",
		`{"invoice_id": 2, "amount": 500, "payment_date": "2026-08-20"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	result := decodeData[map[string]any](t, w)
	assert.NotZero(t, result["payment_id"])

	invoices := decodeData[[]invoiceRow](t, doRequest(engine, "GET", "/api/v1/ledger/invoices?customer_id=1", ""))
	for _, inv := range invoices {
		if inv.InvoiceID == 2 {
			assert.Equal(t, 500.0, inv.TotalPaid)
			assert.Equal(t, 4000.0, inv.Outstanding)
		}
	}
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "POST", "/api/v1/ledger/payments",
		`{"invoice_id": 3, "amount": 6000.01, "payment_date": "2026-08-20"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidAmount)
	assert.Contains(t, w.Body.String(), "Invalid amount. Outstanding is 6000.00")

	// Nothing persisted
	invoices := decodeData[[]invoiceRow](t, doRequest(engine, "GET", "/api/v1/ledger/invoices?customer_id=2", ""))
	require.Len(t, invoices, 1)
	assert.Equal(t, 6000.0, invoices[0].Outstanding)
}

func TestRecordPaymentExactSettle(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "POST", "/api/v1/ledger/payments",
		`{"invoice_id": 3, "amount": 6000, "payment_date": "2026-08-20"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	invoices := decodeData[[]invoiceRow](t, doRequest(engine, "GET", "/api/v1/ledger/invoices?customer_id=2", ""))
	require.Len(t, invoices, 1)
	assert.Equal(t, 0.0, invoices[0].Outstanding)
	assert.Equal(t, "Paid", invoices[0].AgingBucket)

	// Settled invoices take no further payments
	w = doRequest(engine, "POST", "/api/v1/ledger/payments",
		`{"invoice_id": 3, "amount": 0.01, "payment_date": "2026-08-21"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid amount. Outstanding is 0.00")
}

func TestRecordPaymentUnknownInvoice(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "POST", "/api/v1/ledger/payments",
		`{"invoice_id": 999, "amount": 100, "payment_date": "2026-08-20"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeNotFound)
	assert.Contains(t, w.Body.String(), "Invoice 999 not found")
}

func TestDashboardKPIs(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "GET", "/api/v1/dashboard/kpis", "")
	require.Equal(t, http.StatusOK, w.Code)

	kpis := decodeData[map[string]float64](t, w)
	assert.Equal(t, 30500.0, kpis["total_invoiced"])
	assert.Equal(t, 3500.0, kpis["total_received"])
	assert.Equal(t, 27000.0, kpis["total_outstanding"])
}

func TestDashboardTopCustomers(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "GET", "/api/v1/dashboard/top-customers", "")
	require.Equal(t, http.StatusOK, w.Code)

	top := decodeData[[]map[string]any](t, w)
	require.Len(t, top, 3)
	assert.Equal(t, "ACME Corp", top[0]["name"])
	assert.Equal(t, 12000.0, top[0]["total_outstanding"])
	assert.Equal(t, "Initech", top[1]["name"])
	assert.Equal(t, 9000.0, top[1]["total_outstanding"])
	assert.Equal(t, "Globex LLC", top[2]["name"])
	assert.Equal(t, 6000.0, top[2]["total_outstanding"])
}

func TestRequestIDHeaderOnResponses(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(engine, "GET", "/api/v1/ledger/customers", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
