package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"salao_backend/internal/models"
)

// EmployeeRepository defines employee database operations.
type EmployeeRepository interface {
	CreateEmployee(executor SQLExecutor, employee *models.Employee) (int64, error)
	GetEmployeeByID(executor SQLExecutor, id int64) (*models.Employee, error)
	GetEmployeeByEmail(executor SQLExecutor, email string) (*models.Employee, error)
	GetEmployees(executor SQLExecutor) ([]models.Employee, error)
	UpdateEmployee(executor SQLExecutor, employee *models.Employee) error
	DeleteEmployee(executor SQLExecutor, id int64) error
}

type employeeRepository struct{}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository() EmployeeRepository {
	return &employeeRepository{}
}

const employeeColumns = `id, full_name, email, phone_number, role, created_at, updated_at`

func scanEmployee(row interface {
	Scan(dest ...interface{}) error
}) (*models.Employee, error) {
	employee := &models.Employee{}
	err := row.Scan(
		&employee.ID, &employee.FullName, &employee.Email, &employee.PhoneNumber,
		&employee.Role, &employee.CreatedAt, &employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *employeeRepository) CreateEmployee(executor SQLExecutor, employee *models.Employee) (int64, error) {
	now := time.Now()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	query := `INSERT INTO funcionarios (full_name, email, phone_number, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := executor.QueryRow(query,
		employee.FullName, employee.Email, employee.PhoneNumber, employee.Role,
		employee.CreatedAt, employee.UpdatedAt,
	).Scan(&employee.ID)
	if err != nil {
		return 0, mapWriteError(err, "creating employee")
	}
	return employee.ID, nil
}

func (r *employeeRepository) GetEmployeeByID(executor SQLExecutor, id int64) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM funcionarios WHERE id = $1`
	employee, err := scanEmployee(executor.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by ID %d: %v", ErrDatabaseError, id, err)
	}
	return employee, nil
}

func (r *employeeRepository) GetEmployeeByEmail(executor SQLExecutor, email string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM funcionarios WHERE LOWER(email) = LOWER($1)`
	employee, err := scanEmployee(executor.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by email: %v", ErrDatabaseError, err)
	}
	return employee, nil
}

func (r *employeeRepository) GetEmployees(executor SQLExecutor) ([]models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM funcionarios ORDER BY full_name ASC`
	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
		}
		employees = append(employees, *employee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employee rows: %v", ErrDatabaseError, err)
	}
	return employees, nil
}

func (r *employeeRepository) UpdateEmployee(executor SQLExecutor, employee *models.Employee) error {
	employee.UpdatedAt = time.Now()
	query := `UPDATE funcionarios SET
	            full_name = $1, email = $2, phone_number = $3, role = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query,
		employee.FullName, employee.Email, employee.PhoneNumber, employee.Role,
		employee.UpdatedAt, employee.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating employee ID %d", employee.ID))
	}
	return requireRowsAffected(result, "updating employee")
}

func (r *employeeRepository) DeleteEmployee(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM funcionarios WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting employee ID %d", id))
	}
	return requireRowsAffected(result, "deleting employee")
}
