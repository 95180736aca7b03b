package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"salao_backend/internal/models"
)

// CategoryRepository defines category database operations.
type CategoryRepository interface {
	CreateCategory(executor SQLExecutor, category *models.Category) (int64, error)
	GetCategoryByID(executor SQLExecutor, id int64) (*models.Category, error)
	GetCategoryByName(executor SQLExecutor, name string) (*models.Category, error)
	GetCategories(executor SQLExecutor) ([]models.Category, error)
	UpdateCategory(executor SQLExecutor, category *models.Category) error
	DeleteCategory(executor SQLExecutor, id int64) error
	CountReferences(executor SQLExecutor, id int64) (int, error)
}

type categoryRepository struct{}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) CreateCategory(executor SQLExecutor, category *models.Category) (int64, error) {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	query := `INSERT INTO categorias (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`
	err := executor.QueryRow(query, category.Name, category.CreatedAt, category.UpdatedAt).Scan(&category.ID)
	if err != nil {
		return 0, mapWriteError(err, "creating category")
	}
	return category.ID, nil
}

func (r *categoryRepository) GetCategoryByID(executor SQLExecutor, id int64) (*models.Category, error) {
	category := &models.Category{}
	query := `SELECT id, name, created_at, updated_at FROM categorias WHERE id = $1`
	err := executor.QueryRow(query, id).Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting category by ID %d: %v", ErrDatabaseError, id, err)
	}
	return category, nil
}

// GetCategoryByName does a case-insensitive lookup, used for duplicate checks.
func (r *categoryRepository) GetCategoryByName(executor SQLExecutor, name string) (*models.Category, error) {
	category := &models.Category{}
	query := `SELECT id, name, created_at, updated_at FROM categorias WHERE LOWER(name) = LOWER($1)`
	err := executor.QueryRow(query, name).Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting category by name: %v", ErrDatabaseError, err)
	}
	return category, nil
}

func (r *categoryRepository) GetCategories(executor SQLExecutor) ([]models.Category, error) {
	query := `SELECT id, name, created_at, updated_at FROM categorias ORDER BY name ASC`
	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category rows: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *categoryRepository) UpdateCategory(executor SQLExecutor, category *models.Category) error {
	category.UpdatedAt = time.Now()
	query := `UPDATE categorias SET name = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, category.Name, category.UpdatedAt, category.ID)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating category ID %d", category.ID))
	}
	return requireRowsAffected(result, "updating category")
}

func (r *categoryRepository) DeleteCategory(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting category ID %d", id))
	}
	return requireRowsAffected(result, "deleting category")
}

// CountReferences returns how many products and services point at the category.
func (r *categoryRepository) CountReferences(executor SQLExecutor, id int64) (int, error) {
	var count int
	query := `SELECT (SELECT COUNT(*) FROM produtos WHERE category_id = $1)
	               + (SELECT COUNT(*) FROM servicos WHERE category_id = $1)`
	if err := executor.QueryRow(query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting category references: %v", ErrDatabaseError, err)
	}
	return count, nil
}
