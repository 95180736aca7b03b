package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"salao_backend/internal/models"
)

// ProductRepository defines inventory database operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(executor SQLExecutor, id int64) (*models.Product, error)
	GetProducts(executor SQLExecutor, categoryID *int64) ([]models.Product, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	UpdateStock(executor SQLExecutor, id int64, quantity int, lastRestock string) error
	DeleteProduct(executor SQLExecutor, id int64) error
}

type productRepository struct{}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository() ProductRepository {
	return &productRepository{}
}

const productColumns = `p.id, p.name, p.category_id, p.quantity, p.min_quantity, p.unit, p.price,
	p.supplier, p.last_restock, p.created_at, p.updated_at, c.id, c.name, c.created_at, c.updated_at`

func scanProduct(row interface {
	Scan(dest ...interface{}) error
}) (*models.Product, error) {
	product := &models.Product{}
	category := &models.Category{}
	err := row.Scan(
		&product.ID, &product.Name, &product.CategoryID, &product.Quantity, &product.MinQuantity,
		&product.Unit, &product.Price, &product.Supplier, &product.LastRestock,
		&product.CreatedAt, &product.UpdatedAt,
		&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.Category = category
	return product, nil
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) (int64, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `INSERT INTO produtos (name, category_id, quantity, min_quantity, unit, price, supplier, last_restock, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`
	err := executor.QueryRow(query,
		product.Name, product.CategoryID, product.Quantity, product.MinQuantity, product.Unit,
		product.Price, product.Supplier, product.LastRestock, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return 0, mapWriteError(err, "creating product")
	}
	return product.ID, nil
}

func (r *productRepository) GetProductByID(executor SQLExecutor, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + `
	          FROM produtos p JOIN categorias c ON c.id = p.category_id
	          WHERE p.id = $1`
	product, err := scanProduct(executor.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

func (r *productRepository) GetProducts(executor SQLExecutor, categoryID *int64) ([]models.Product, error) {
	query := `SELECT ` + productColumns + `
	          FROM produtos p JOIN categorias c ON c.id = p.category_id`
	args := []interface{}{}
	if categoryID != nil {
		query += ` WHERE p.category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY p.name ASC`

	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	product.UpdatedAt = time.Now()
	query := `UPDATE produtos SET
	            name = $1, category_id = $2, quantity = $3, min_quantity = $4, unit = $5,
	            price = $6, supplier = $7, last_restock = $8, updated_at = $9
	          WHERE id = $10`
	result, err := executor.Exec(query,
		product.Name, product.CategoryID, product.Quantity, product.MinQuantity, product.Unit,
		product.Price, product.Supplier, product.LastRestock, product.UpdatedAt, product.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating product ID %d", product.ID))
	}
	return requireRowsAffected(result, "updating product")
}

// UpdateStock sets the quantity on hand and refreshes the restock date.
func (r *productRepository) UpdateStock(executor SQLExecutor, id int64, quantity int, lastRestock string) error {
	query := `UPDATE produtos SET quantity = $1, last_restock = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, quantity, lastRestock, time.Now(), id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating stock for product ID %d", id))
	}
	return requireRowsAffected(result, "updating stock")
}

func (r *productRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting product ID %d", id))
	}
	return requireRowsAffected(result, "deleting product")
}
