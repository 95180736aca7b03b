package services

import (
	"errors"
	"fmt"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
	"salao_backend/pkg/utils"
)

// CatalogService manages the bookable service catalog.
type CatalogService interface {
	CreateService(executor repositories.SQLExecutor, service *models.Service) error
	GetServiceByID(executor repositories.SQLExecutor, id int64) (*models.Service, error)
	GetServices(executor repositories.SQLExecutor, activeOnly bool) ([]models.Service, error)
	UpdateService(executor repositories.SQLExecutor, service *models.Service) error
	DeleteService(executor repositories.SQLExecutor, id int64) error
}

type catalogService struct {
	serviceRepo  repositories.ServiceRepository
	categoryRepo repositories.CategoryRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(serviceRepo repositories.ServiceRepository, categoryRepo repositories.CategoryRepository) CatalogService {
	return &catalogService{serviceRepo: serviceRepo, categoryRepo: categoryRepo}
}

func (s *catalogService) validate(executor repositories.SQLExecutor, service *models.Service) error {
	if utils.IsEmpty(service.Name) {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if service.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if service.CategoryID != nil {
		if _, err := s.categoryRepo.GetCategoryByID(executor, *service.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: category does not exist", ErrValidation)
			}
			return err
		}
	}
	return nil
}

func (s *catalogService) CreateService(executor repositories.SQLExecutor, service *models.Service) error {
	if err := s.validate(executor, service); err != nil {
		return err
	}
	service.IsActive = true
	_, err := s.serviceRepo.CreateService(executor, service)
	return err
}

func (s *catalogService) GetServiceByID(executor repositories.SQLExecutor, id int64) (*models.Service, error) {
	service, err := s.serviceRepo.GetServiceByID(executor, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return service, nil
}

func (s *catalogService) GetServices(executor repositories.SQLExecutor, activeOnly bool) ([]models.Service, error) {
	return s.serviceRepo.GetServices(executor, activeOnly)
}

func (s *catalogService) UpdateService(executor repositories.SQLExecutor, service *models.Service) error {
	if err := s.validate(executor, service); err != nil {
		return err
	}
	err := s.serviceRepo.UpdateService(executor, service)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *catalogService) DeleteService(executor repositories.SQLExecutor, id int64) error {
	err := s.serviceRepo.DeleteService(executor, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repositories.ErrForeignKeyViolation) {
		return fmt.Errorf("%w: service has appointments", ErrValidation)
	}
	return err
}
