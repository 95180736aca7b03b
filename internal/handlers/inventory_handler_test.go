package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
	"salao_backend/internal/services"
)

func newInventoryRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *services.AuditService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	inventoryService := services.NewInventoryService(repositories.NewProductRepository(), repositories.NewCategoryRepository())
	audit := services.NewAuditService()
	handler := NewInventoryHandler(inventoryService, audit, services.NewActivityLogService())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant_db", db)
		c.Set("user_id", int64(1))
		c.Set("email", "admin@example.com")
		c.Set("role", "Admin")
	})
	router.POST("/categories", handler.CreateCategory)
	router.DELETE("/categories/:id", handler.DeleteCategory)
	router.PATCH("/products/:id/stock", handler.UpdateStock)
	return router, mock, audit
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	router, mock, _ := newInventoryRouter(t)

	existing := sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
		AddRow(int64(3), "Cabelo", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT id, name, created_at, updated_at FROM categorias WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("Cabelo").
		WillReturnRows(existing)

	w := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Cabelo"}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Categoria já existe")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategorySuccessRecordsAudit(t *testing.T) {
	router, mock, audit := newInventoryRouter(t)

	mock.ExpectQuery(`SELECT id, name, created_at, updated_at FROM categorias WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("Unhas").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))
	mock.ExpectQuery("INSERT INTO categorias").
		WithArgs("Unhas", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	w := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Unhas"}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":5`)
	assert.NoError(t, mock.ExpectationsWereMet())

	entries := audit.GetEntries(models.AuditFilters{}, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, "admin@example.com", entries[0].UserName)
}

func TestUpdateStockRejectsNegativeQuantity(t *testing.T) {
	router, _, _ := newInventoryRouter(t)

	w := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPatch, "/products/2/stock", strings.NewReader(`{"quantity":-5}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantidade inválida")
}

func TestUpdateStockSetsAbsoluteQuantityAndRestockDate(t *testing.T) {
	router, mock, _ := newInventoryRouter(t)

	productRow := sqlmock.NewRows([]string{
		"id", "name", "category_id", "quantity", "min_quantity", "unit", "price",
		"supplier", "last_restock", "created_at", "updated_at",
		"c_id", "c_name", "c_created_at", "c_updated_at",
	}).AddRow(
		int64(2), "Shampoo", int64(3), 3, 5, "un", 35.0,
		"Fornecedor X", "2026-08-01", time.Now(), time.Now(),
		int64(3), "Cabelo", time.Now(), time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM produtos p JOIN categorias c").
		WithArgs(int64(2)).
		WillReturnRows(productRow)

	today := time.Now().Format("2006-01-02")
	mock.ExpectExec("UPDATE produtos SET quantity").
		WithArgs(12, today, sqlmock.AnyArg(), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPatch, "/products/2/stock", strings.NewReader(`{"quantity":12}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":12`)
	assert.Contains(t, w.Body.String(), `"last_restock":"`+today+`"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStockAcceptsCurrentQuantity(t *testing.T) {
	router, mock, _ := newInventoryRouter(t)

	productRow := sqlmock.NewRows([]string{
		"id", "name", "category_id", "quantity", "min_quantity", "unit", "price",
		"supplier", "last_restock", "created_at", "updated_at",
		"c_id", "c_name", "c_created_at", "c_updated_at",
	}).AddRow(
		int64(2), "Shampoo", int64(3), 3, 5, "un", 35.0,
		"Fornecedor X", "2026-08-01", time.Now(), time.Now(),
		int64(3), "Cabelo", time.Now(), time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM produtos p JOIN categorias c").
		WithArgs(int64(2)).
		WillReturnRows(productRow)

	// Setting the same quantity still refreshes the restock date.
	today := time.Now().Format("2006-01-02")
	mock.ExpectExec("UPDATE produtos SET quantity").
		WithArgs(3, today, sqlmock.AnyArg(), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPatch, "/products/2/stock", strings.NewReader(`{"quantity":3}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	router, mock, _ := newInventoryRouter(t)

	mock.ExpectQuery(`SELECT \(SELECT COUNT\(\*\) FROM produtos WHERE category_id = \$1\)`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	w := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/categories/3", nil)
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Categoria em uso")
	assert.NoError(t, mock.ExpectationsWereMet())
}
