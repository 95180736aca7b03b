package services

import (
	"errors"
	"fmt"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
	"salao_backend/pkg/utils"
)

// EmployeeService manages the clinic team roster.
type EmployeeService interface {
	CreateEmployee(executor repositories.SQLExecutor, employee *models.Employee) error
	GetEmployeeByID(executor repositories.SQLExecutor, id int64) (*models.Employee, error)
	GetEmployees(executor repositories.SQLExecutor) ([]models.Employee, error)
	UpdateEmployee(executor repositories.SQLExecutor, employee *models.Employee) error
	DeleteEmployee(executor repositories.SQLExecutor, id int64) error
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(employeeRepo repositories.EmployeeRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

func validateEmployee(employee *models.Employee) error {
	if utils.IsEmpty(employee.FullName) || utils.IsEmpty(employee.Email) {
		return fmt.Errorf("%w: full name and email are required", ErrValidation)
	}
	if !utils.IsValidEmail(employee.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return nil
}

func (s *employeeService) CreateEmployee(executor repositories.SQLExecutor, employee *models.Employee) error {
	if err := validateEmployee(employee); err != nil {
		return err
	}
	_, err := s.employeeRepo.CreateEmployee(executor, employee)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrEmailExists
	}
	return err
}

func (s *employeeService) GetEmployeeByID(executor repositories.SQLExecutor, id int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(executor, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) GetEmployees(executor repositories.SQLExecutor) ([]models.Employee, error) {
	return s.employeeRepo.GetEmployees(executor)
}

func (s *employeeService) UpdateEmployee(executor repositories.SQLExecutor, employee *models.Employee) error {
	if err := validateEmployee(employee); err != nil {
		return err
	}
	err := s.employeeRepo.UpdateEmployee(executor, employee)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrEmailExists
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *employeeService) DeleteEmployee(executor repositories.SQLExecutor, id int64) error {
	err := s.employeeRepo.DeleteEmployee(executor, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repositories.ErrForeignKeyViolation) {
		return fmt.Errorf("%w: employee has appointments", ErrValidation)
	}
	return err
}
