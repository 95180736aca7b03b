package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"salao_backend/internal/models"
)

// ClinicRepository defines tenant-registry operations. Clinics live in the
// public schema, so this repository holds the shared pool directly.
type ClinicRepository interface {
	CreateClinic(clinic *models.Clinic) error
	GetClinicByID(id uuid.UUID) (*models.Clinic, error)
	GetClinicByDocument(document string) (*models.Clinic, error)
	GetActiveClinics() ([]models.Clinic, error)
	UpdateStatus(id uuid.UUID, status string) error
	UpdateAsaasCustomer(id uuid.UUID, customerID string) error
	UpdateStatusByAsaasCustomer(customerID, status string) error
}

type clinicRepository struct {
	db *sql.DB
}

// NewClinicRepository creates a new instance of ClinicRepository.
func NewClinicRepository(db *sql.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

const clinicColumns = `id, name, document, plan, asaas_customer_id, status, renewal_date, created_at, updated_at`

func scanClinic(row interface {
	Scan(dest ...interface{}) error
}) (*models.Clinic, error) {
	clinic := &models.Clinic{}
	err := row.Scan(
		&clinic.ID, &clinic.Name, &clinic.Document, &clinic.Plan, &clinic.AsaasCustomerID,
		&clinic.Status, &clinic.RenewalDate, &clinic.CreatedAt, &clinic.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return clinic, nil
}

func (r *clinicRepository) CreateClinic(clinic *models.Clinic) error {
	if clinic.ID == uuid.Nil {
		clinic.ID = uuid.New()
	}
	now := time.Now()
	clinic.CreatedAt = now
	clinic.UpdatedAt = now
	if clinic.Status == "" {
		clinic.Status = models.ClinicStatusActive
	}

	query := `INSERT INTO clinicas (id, name, document, plan, asaas_customer_id, status, renewal_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(query,
		clinic.ID, clinic.Name, clinic.Document, clinic.Plan, clinic.AsaasCustomerID,
		clinic.Status, clinic.RenewalDate, clinic.CreatedAt, clinic.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "creating clinic")
	}
	return nil
}

func (r *clinicRepository) GetClinicByID(id uuid.UUID) (*models.Clinic, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinicas WHERE id = $1`
	clinic, err := scanClinic(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting clinic by ID %s: %v", ErrDatabaseError, id, err)
	}
	return clinic, nil
}

func (r *clinicRepository) GetClinicByDocument(document string) (*models.Clinic, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinicas WHERE document = $1`
	clinic, err := scanClinic(r.db.QueryRow(query, document))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting clinic by document: %v", ErrDatabaseError, err)
	}
	return clinic, nil
}

func (r *clinicRepository) GetActiveClinics() ([]models.Clinic, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinicas WHERE status = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(query, models.ClinicStatusActive)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active clinics: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clinics := []models.Clinic{}
	for rows.Next() {
		clinic, err := scanClinic(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning clinic: %v", ErrDatabaseError, err)
		}
		clinics = append(clinics, *clinic)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating clinic rows: %v", ErrDatabaseError, err)
	}
	return clinics, nil
}

func (r *clinicRepository) UpdateStatus(id uuid.UUID, status string) error {
	result, err := r.db.Exec(`UPDATE clinicas SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating status for clinic %s", id))
	}
	return requireRowsAffected(result, "updating clinic status")
}

func (r *clinicRepository) UpdateAsaasCustomer(id uuid.UUID, customerID string) error {
	result, err := r.db.Exec(`UPDATE clinicas SET asaas_customer_id = $1, updated_at = $2 WHERE id = $3`, customerID, time.Now(), id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating Asaas customer for clinic %s", id))
	}
	return requireRowsAffected(result, "updating clinic Asaas customer")
}

// UpdateStatusByAsaasCustomer is the webhook path: Asaas only knows its own
// customer ID.
func (r *clinicRepository) UpdateStatusByAsaasCustomer(customerID, status string) error {
	result, err := r.db.Exec(`UPDATE clinicas SET status = $1, updated_at = $2 WHERE asaas_customer_id = $3`, status, time.Now(), customerID)
	if err != nil {
		return mapWriteError(err, "updating clinic status by Asaas customer")
	}
	return requireRowsAffected(result, "updating clinic status by Asaas customer")
}
