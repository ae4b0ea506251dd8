package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/notify"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type discardNotifier struct{}

func (discardNotifier) Notify(notify.Alert) {}

func newListTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Transaction{},
		&model.Expense{},
		&model.AuditLog{},
	))

	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	auditRepo := repository.NewAuditLogRepo(db)
	audit := service.NewAuditService(auditRepo)

	productHandler := NewProductHandler(service.NewInventoryService(productRepo, txRepo, db, audit, discardNotifier{}))
	expenseHandler := NewExpenseHandler(service.NewExpenseService(expenseRepo, audit))
	auditHandler := NewAuditHandler(auditRepo)

	app := fiber.New()
	app.Use(recover.New())
	app.Get("/products", productHandler.GetProducts)
	app.Get("/expenses", expenseHandler.GetExpenses)
	app.Get("/audit-logs", auditHandler.GetAuditLogs)
	return app, db
}

type listEnvelope struct {
	Meta listMeta `json:"meta"`
}

func getListMeta(t *testing.T, app *fiber.App, path string) (int, listMeta) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope listEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope.Meta
}

// Degenerate pagination values must fall back to the defaults instead of
// reaching the total-pages division raw.
func TestListEndpointsTolerateDegenerateLimits(t *testing.T) {
	app, db := newListTestApp(t)
	require.NoError(t, db.Create(&model.Product{
		Name: "Cola", SKU: "COLA-1", Price: decimal.NewFromInt(5), CostPrice: decimal.NewFromInt(2),
	}).Error)

	for _, path := range []string{
		"/products?limit=0",
		"/products?limit=-3&page=-7",
		"/expenses?limit=0",
		"/audit-logs?limit=0&page=0",
	} {
		status, meta := getListMeta(t, app, path)
		assert.Equal(t, 200, status, path)
		assert.GreaterOrEqual(t, meta.Limit, 1, path)
		assert.GreaterOrEqual(t, meta.Page, 1, path)
	}

	status, meta := getListMeta(t, app, "/products?limit=0")
	assert.Equal(t, 200, status)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, int64(1), meta.Total)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		page, limit, fallback int
		wantPage, wantLimit   int
	}{
		{1, 10, 10, 1, 10},
		{0, 0, 10, 1, 10},
		{-1, -5, 20, 1, 20},
		{3, 50, 10, 3, 50},
	}
	for _, tt := range tests {
		page, limit := normalizePaging(tt.page, tt.limit, tt.fallback)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantLimit, limit)
	}
}

func TestNewListMeta(t *testing.T) {
	meta := newListMeta(25, 2, 10)
	assert.Equal(t, 3, meta.TotalPages)

	meta = newListMeta(0, 1, 10)
	assert.Equal(t, 0, meta.TotalPages)

	meta = newListMeta(20, 1, 10)
	assert.Equal(t, 2, meta.TotalPages)
}
