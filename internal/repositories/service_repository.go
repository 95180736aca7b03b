package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"salao_backend/internal/models"
)

// ServiceRepository defines salon-service catalog database operations.
type ServiceRepository interface {
	CreateService(executor SQLExecutor, service *models.Service) (int64, error)
	GetServiceByID(executor SQLExecutor, id int64) (*models.Service, error)
	GetServiceByName(executor SQLExecutor, name string) (*models.Service, error)
	GetServices(executor SQLExecutor, activeOnly bool) ([]models.Service, error)
	UpdateService(executor SQLExecutor, service *models.Service) error
	DeleteService(executor SQLExecutor, id int64) error
}

type serviceRepository struct{}

// NewServiceRepository creates a new instance of ServiceRepository.
func NewServiceRepository() ServiceRepository {
	return &serviceRepository{}
}

const serviceColumns = `id, name, duration_minutes, price, category_id, description, is_active, created_at, updated_at`

func scanService(row interface {
	Scan(dest ...interface{}) error
}) (*models.Service, error) {
	service := &models.Service{}
	err := row.Scan(
		&service.ID, &service.Name, &service.DurationMinutes, &service.Price,
		&service.CategoryID, &service.Description, &service.IsActive,
		&service.CreatedAt, &service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (r *serviceRepository) CreateService(executor SQLExecutor, service *models.Service) (int64, error) {
	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now

	query := `INSERT INTO servicos (name, duration_minutes, price, category_id, description, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	err := executor.QueryRow(query,
		service.Name, service.DurationMinutes, service.Price, service.CategoryID,
		service.Description, service.IsActive, service.CreatedAt, service.UpdatedAt,
	).Scan(&service.ID)
	if err != nil {
		return 0, mapWriteError(err, "creating service")
	}
	return service.ID, nil
}

func (r *serviceRepository) GetServiceByID(executor SQLExecutor, id int64) (*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM servicos WHERE id = $1`
	service, err := scanService(executor.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting service by ID %d: %v", ErrDatabaseError, id, err)
	}
	return service, nil
}

func (r *serviceRepository) GetServiceByName(executor SQLExecutor, name string) (*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM servicos WHERE LOWER(name) = LOWER($1)`
	service, err := scanService(executor.QueryRow(query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting service by name: %v", ErrDatabaseError, err)
	}
	return service, nil
}

func (r *serviceRepository) GetServices(executor SQLExecutor, activeOnly bool) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM servicos`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying services: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning service: %v", ErrDatabaseError, err)
		}
		services = append(services, *service)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating service rows: %v", ErrDatabaseError, err)
	}
	return services, nil
}

func (r *serviceRepository) UpdateService(executor SQLExecutor, service *models.Service) error {
	service.UpdatedAt = time.Now()
	query := `UPDATE servicos SET
	            name = $1, duration_minutes = $2, price = $3, category_id = $4,
	            description = $5, is_active = $6, updated_at = $7
	          WHERE id = $8`
	result, err := executor.Exec(query,
		service.Name, service.DurationMinutes, service.Price, service.CategoryID,
		service.Description, service.IsActive, service.UpdatedAt, service.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating service ID %d", service.ID))
	}
	return requireRowsAffected(result, "updating service")
}

func (r *serviceRepository) DeleteService(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM servicos WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting service ID %d", id))
	}
	return requireRowsAffected(result, "deleting service")
}
