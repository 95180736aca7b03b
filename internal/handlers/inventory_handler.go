package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/middleware"
	"salao_backend/internal/models"
	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// InventoryHandler exposes product, stock and category endpoints.
type InventoryHandler struct {
	inventoryService services.InventoryService
	recorder         recorder
}

// NewInventoryHandler creates a new instance of InventoryHandler.
func NewInventoryHandler(inventoryService services.InventoryService, audit *services.AuditService, activityLog *services.ActivityLogService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, recorder: newRecorder(audit, activityLog)}
}

// CreateProduct adds an inventory item.
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.inventoryService.CreateProduct(middleware.TenantDB(c), &product); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditCreate, models.ResourceProduct, strconv.FormatInt(product.ID, 10), "Produto "+product.Name+" cadastrado", nil)
	c.JSON(http.StatusCreated, product)
}

// GetProduct fetches one inventory item.
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.inventoryService.GetProductByID(middleware.TenantDB(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListProducts lists items, optionally narrowed by category or stock band.
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid category_id", ""))
			return
		}
		categoryID = &parsed
	}

	products, err := h.inventoryService.GetProducts(middleware.TenantDB(c), categoryID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Summary aggregates stock health.
func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.inventoryService.Summary(middleware.TenantDB(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateProduct edits an inventory item.
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	product.ID = id

	if err := h.inventoryService.UpdateProduct(middleware.TenantDB(c), &product); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceProduct, strconv.FormatInt(id, 10), "Produto "+product.Name+" atualizado", nil)
	c.JSON(http.StatusOK, product)
}

// UpdateStock sets a product's quantity to the value in the body.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var update services.StockUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	update.ProductID = id

	product, err := h.inventoryService.UpdateStock(middleware.TenantDB(c), update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceProduct, strconv.FormatInt(id, 10),
		"Estoque de "+product.Name+" ajustado para "+strconv.Itoa(product.Quantity), nil)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes an inventory item.
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteProduct(middleware.TenantDB(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditDelete, models.ResourceProduct, strconv.FormatInt(id, 10), "Produto removido", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Produto removido com sucesso"})
}

// CreateCategory adds a product/service category.
func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.inventoryService.CreateCategory(middleware.TenantDB(c), &category); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditCreate, models.ResourceProduct, strconv.FormatInt(category.ID, 10), "Categoria "+category.Name+" criada", nil)
	c.JSON(http.StatusCreated, category)
}

// ListCategories lists categories.
func (h *InventoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.inventoryService.GetCategories(middleware.TenantDB(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// UpdateCategory renames a category.
func (h *InventoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	category.ID = id

	if err := h.inventoryService.UpdateCategory(middleware.TenantDB(c), &category); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceProduct, strconv.FormatInt(id, 10), "Categoria "+category.Name+" atualizada", nil)
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category when nothing references it.
func (h *InventoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteCategory(middleware.TenantDB(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditDelete, models.ResourceProduct, strconv.FormatInt(id, 10), "Categoria removida", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Categoria removida com sucesso"})
}
