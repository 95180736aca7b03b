package services

import (
	"errors"
	"fmt"
	"time"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
	"salao_backend/pkg/utils"
)

// StockUpdate sets a product's quantity to an absolute value.
type StockUpdate struct {
	ProductID int64 `json:"product_id"`
	Quantity  *int  `json:"quantity" binding:"required"`
}

// InventorySummary aggregates stock health for the dashboard.
type InventorySummary struct {
	TotalProducts int     `json:"total_products"`
	LowStock      int     `json:"low_stock"`
	MediumStock   int     `json:"medium_stock"`
	TotalValue    float64 `json:"total_value"`
}

// InventoryService manages products, stock levels and product categories.
type InventoryService interface {
	CreateProduct(executor repositories.SQLExecutor, product *models.Product) error
	GetProductByID(executor repositories.SQLExecutor, id int64) (*models.Product, error)
	GetProducts(executor repositories.SQLExecutor, categoryID *int64, status string) ([]models.Product, error)
	UpdateProduct(executor repositories.SQLExecutor, product *models.Product) error
	UpdateStock(executor repositories.SQLExecutor, update StockUpdate) (*models.Product, error)
	DeleteProduct(executor repositories.SQLExecutor, id int64) error
	Summary(executor repositories.SQLExecutor) (*InventorySummary, error)

	CreateCategory(executor repositories.SQLExecutor, category *models.Category) error
	GetCategories(executor repositories.SQLExecutor) ([]models.Category, error)
	UpdateCategory(executor repositories.SQLExecutor, category *models.Category) error
	DeleteCategory(executor repositories.SQLExecutor, id int64) error
}

type inventoryService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) InventoryService {
	return &inventoryService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *inventoryService) validateProduct(executor repositories.SQLExecutor, product *models.Product) error {
	if utils.IsEmpty(product.Name) || utils.IsEmpty(product.Unit) || utils.IsEmpty(product.Supplier) {
		return fmt.Errorf("%w: name, unit and supplier are required", ErrValidation)
	}
	if product.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if product.MinQuantity <= 0 {
		return fmt.Errorf("%w: minimum quantity must be positive", ErrValidation)
	}
	if product.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if _, err := s.categoryRepo.GetCategoryByID(executor, product.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: category does not exist", ErrValidation)
		}
		return err
	}
	return nil
}

func (s *inventoryService) CreateProduct(executor repositories.SQLExecutor, product *models.Product) error {
	if err := s.validateProduct(executor, product); err != nil {
		return err
	}
	if product.LastRestock == "" {
		product.LastRestock = time.Now().Format("2006-01-02")
	}
	if _, err := s.productRepo.CreateProduct(executor, product); err != nil {
		return err
	}
	product.Status = product.StockStatus()
	return nil
}

func (s *inventoryService) GetProductByID(executor repositories.SQLExecutor, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(executor, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	product.Status = product.StockStatus()
	return product, nil
}

func (s *inventoryService) GetProducts(executor repositories.SQLExecutor, categoryID *int64, status string) ([]models.Product, error) {
	products, err := s.productRepo.GetProducts(executor, categoryID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Status = products[i].StockStatus()
	}
	if status == "" {
		return products, nil
	}

	filtered := products[:0]
	for _, product := range products {
		if product.Status == status {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (s *inventoryService) UpdateProduct(executor repositories.SQLExecutor, product *models.Product) error {
	if err := s.validateProduct(executor, product); err != nil {
		return err
	}
	err := s.productRepo.UpdateProduct(executor, product)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	product.Status = product.StockStatus()
	return nil
}

// UpdateStock overwrites the quantity on hand. Negative quantities are
// rejected; every update counts as a restock, including setting zero.
func (s *inventoryService) UpdateStock(executor repositories.SQLExecutor, update StockUpdate) (*models.Product, error) {
	if update.Quantity == nil || *update.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetProductByID(executor, update.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lastRestock := time.Now().Format("2006-01-02")
	if err := s.productRepo.UpdateStock(executor, product.ID, *update.Quantity, lastRestock); err != nil {
		return nil, err
	}

	product.Quantity = *update.Quantity
	product.LastRestock = lastRestock
	product.Status = product.StockStatus()
	return product, nil
}

func (s *inventoryService) DeleteProduct(executor repositories.SQLExecutor, id int64) error {
	err := s.productRepo.DeleteProduct(executor, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *inventoryService) Summary(executor repositories.SQLExecutor) (*InventorySummary, error) {
	products, err := s.productRepo.GetProducts(executor, nil)
	if err != nil {
		return nil, err
	}

	summary := &InventorySummary{TotalProducts: len(products)}
	for i := range products {
		switch products[i].StockStatus() {
		case models.StockLow:
			summary.LowStock++
		case models.StockMedium:
			summary.MediumStock++
		}
		summary.TotalValue += float64(products[i].Quantity) * products[i].Price
	}
	return summary, nil
}

func (s *inventoryService) CreateCategory(executor repositories.SQLExecutor, category *models.Category) error {
	if utils.IsEmpty(category.Name) {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := s.categoryRepo.GetCategoryByName(executor, category.Name); err == nil {
		return ErrCategoryExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	_, err := s.categoryRepo.CreateCategory(executor, category)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrCategoryExists
	}
	return err
}

func (s *inventoryService) GetCategories(executor repositories.SQLExecutor) ([]models.Category, error) {
	return s.categoryRepo.GetCategories(executor)
}

func (s *inventoryService) UpdateCategory(executor repositories.SQLExecutor, category *models.Category) error {
	if utils.IsEmpty(category.Name) {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if existing, err := s.categoryRepo.GetCategoryByName(executor, category.Name); err == nil {
		if existing.ID != category.ID {
			return ErrCategoryExists
		}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	err := s.categoryRepo.UpdateCategory(executor, category)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrCategoryExists
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// DeleteCategory refuses while any product or service still references the
// category.
func (s *inventoryService) DeleteCategory(executor repositories.SQLExecutor, id int64) error {
	references, err := s.categoryRepo.CountReferences(executor, id)
	if err != nil {
		return err
	}
	if references > 0 {
		return ErrCategoryInUse
	}

	err = s.categoryRepo.DeleteCategory(executor, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repositories.ErrForeignKeyViolation) {
		return ErrCategoryInUse
	}
	return err
}
