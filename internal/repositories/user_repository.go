package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"salao_backend/internal/models"
)

// UserRepository defines operator-account operations (public schema).
type UserRepository interface {
	CreateUser(user *models.User) (int64, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdatePassword(id int64, passwordHash string) error
	SetTwoFactorSecret(id int64, secret *string) error
	SetTwoFactorEnabled(id int64, enabled bool) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, clinic_id, full_name, email, password_hash, role, two_factor_secret, two_factor_enabled, created_at, updated_at`

func scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.ClinicID, &user.FullName, &user.Email, &user.PasswordHash,
		&user.Role, &user.TwoFactorSecret, &user.TwoFactorEnabled, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) CreateUser(user *models.User) (int64, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleStaff
	}

	query := `INSERT INTO usuarios (clinic_id, full_name, email, password_hash, role, two_factor_secret, two_factor_enabled, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	err := r.db.QueryRow(query,
		user.ClinicID, user.FullName, user.Email, user.PasswordHash, user.Role,
		user.TwoFactorSecret, user.TwoFactorEnabled, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return 0, mapWriteError(err, "creating user")
	}
	return user.ID, nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by ID %d: %v", ErrDatabaseError, id, err)
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE LOWER(email) = LOWER($1)`
	user, err := scanUser(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by email: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *userRepository) UpdatePassword(id int64, passwordHash string) error {
	result, err := r.db.Exec(`UPDATE usuarios SET password_hash = $1, updated_at = $2 WHERE id = $3`, passwordHash, time.Now(), id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating password for user ID %d", id))
	}
	return requireRowsAffected(result, "updating password")
}

func (r *userRepository) SetTwoFactorSecret(id int64, secret *string) error {
	result, err := r.db.Exec(`UPDATE usuarios SET two_factor_secret = $1, updated_at = $2 WHERE id = $3`, secret, time.Now(), id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating 2FA secret for user ID %d", id))
	}
	return requireRowsAffected(result, "updating 2FA secret")
}

func (r *userRepository) SetTwoFactorEnabled(id int64, enabled bool) error {
	result, err := r.db.Exec(`UPDATE usuarios SET two_factor_enabled = $1, updated_at = $2 WHERE id = $3`, enabled, time.Now(), id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating 2FA flag for user ID %d", id))
	}
	return requireRowsAffected(result, "updating 2FA flag")
}
