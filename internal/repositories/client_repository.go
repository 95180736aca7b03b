package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"salao_backend/internal/crypto"
	"salao_backend/internal/models"
)

// ClientRepository defines client-related database operations. The PII codec
// is applied here: full name, email, phone and birth date are sealed before
// they touch the database and opened right after scanning. A deterministic
// email digest column backs the uniqueness constraint, since AES-GCM
// ciphertexts of equal plaintexts never collide.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(executor SQLExecutor, id int64) (*models.Client, error)
	GetClientByEmail(executor SQLExecutor, email string) (*models.Client, error)
	GetAllClients(executor SQLExecutor) ([]models.Client, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	UpdateLoyalty(executor SQLExecutor, id int64, points int, tier string) error
	DeleteClient(executor SQLExecutor, id int64) error
}

type clientRepository struct {
	codec *crypto.Codec
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(codec *crypto.Codec) ClientRepository {
	return &clientRepository{codec: codec}
}

const clientColumns = `id, full_name, email, email_digest, phone_number, date_of_birth, address, notes,
	loyalty_points, loyalty_tier, total_spent, created_at, updated_at`

func (r *clientRepository) seal(client *models.Client) (name, email, phone string, dob *string, err error) {
	if name, err = r.codec.Encrypt(client.FullName); err != nil {
		return
	}
	if email, err = r.codec.Encrypt(client.Email); err != nil {
		return
	}
	if phone, err = r.codec.Encrypt(client.PhoneNumber); err != nil {
		return
	}
	if client.DateOfBirth != nil {
		var sealed string
		if sealed, err = r.codec.Encrypt(*client.DateOfBirth); err != nil {
			return
		}
		dob = &sealed
	}
	return
}

func (r *clientRepository) scanClient(row interface {
	Scan(dest ...interface{}) error
}) (*models.Client, error) {
	client := &models.Client{}
	var name, email, digest, phone string
	var dob sql.NullString
	err := row.Scan(
		&client.ID, &name, &email, &digest, &phone, &dob, &client.Address, &client.Notes,
		&client.LoyaltyPoints, &client.LoyaltyTier, &client.TotalSpent, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if client.FullName, err = r.codec.Decrypt(name); err != nil {
		return nil, fmt.Errorf("%w: opening client name: %v", ErrDatabaseError, err)
	}
	if client.Email, err = r.codec.Decrypt(email); err != nil {
		return nil, fmt.Errorf("%w: opening client email: %v", ErrDatabaseError, err)
	}
	if client.PhoneNumber, err = r.codec.Decrypt(phone); err != nil {
		return nil, fmt.Errorf("%w: opening client phone: %v", ErrDatabaseError, err)
	}
	if dob.Valid {
		opened, err := r.codec.Decrypt(dob.String)
		if err != nil {
			return nil, fmt.Errorf("%w: opening client birth date: %v", ErrDatabaseError, err)
		}
		client.DateOfBirth = &opened
	}
	return client, nil
}

// CreateClient inserts a new client.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	name, email, phone, dob, err := r.seal(client)
	if err != nil {
		return 0, fmt.Errorf("%w: sealing client fields: %v", ErrDatabaseError, err)
	}

	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	query := `INSERT INTO clientes (full_name, email, email_digest, phone_number, date_of_birth, address, notes,
	            loyalty_points, loyalty_tier, total_spent, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id`
	err = executor.QueryRow(query,
		name, email, crypto.Digest(client.Email), phone, dob, client.Address, client.Notes,
		client.LoyaltyPoints, client.LoyaltyTier, client.TotalSpent, client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		return 0, mapWriteError(err, "creating client")
	}
	return client.ID, nil
}

// GetClientByID retrieves a client by ID.
func (r *clientRepository) GetClientByID(executor SQLExecutor, id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE id = $1`
	client, err := r.scanClient(executor.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// GetClientByEmail retrieves a client through the deterministic email digest.
func (r *clientRepository) GetClientByEmail(executor SQLExecutor, email string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE email_digest = $1`
	client, err := r.scanClient(executor.QueryRow(query, crypto.Digest(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by email: %v", ErrDatabaseError, err)
	}
	return client, nil
}

// GetAllClients retrieves every client of the tenant. Search and pagination
// happen after decryption in the service layer because the PII columns are
// not queryable.
func (r *clientRepository) GetAllClients(executor SQLExecutor) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes ORDER BY id ASC`
	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		client, err := r.scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// UpdateClient updates an existing client.
func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	name, email, phone, dob, err := r.seal(client)
	if err != nil {
		return fmt.Errorf("%w: sealing client fields: %v", ErrDatabaseError, err)
	}

	client.UpdatedAt = time.Now()
	query := `UPDATE clientes SET
	            full_name = $1, email = $2, email_digest = $3, phone_number = $4, date_of_birth = $5,
	            address = $6, notes = $7, loyalty_points = $8, loyalty_tier = $9, total_spent = $10, updated_at = $11
	          WHERE id = $12`
	result, err := executor.Exec(query,
		name, email, crypto.Digest(client.Email), phone, dob,
		client.Address, client.Notes, client.LoyaltyPoints, client.LoyaltyTier, client.TotalSpent,
		client.UpdatedAt, client.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating client ID %d", client.ID))
	}
	return requireRowsAffected(result, "updating client")
}

// UpdateLoyalty persists a recomputed points balance and tier.
func (r *clientRepository) UpdateLoyalty(executor SQLExecutor, id int64, points int, tier string) error {
	query := `UPDATE clientes SET loyalty_points = $1, loyalty_tier = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, points, tier, time.Now(), id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating loyalty for client ID %d", id))
	}
	return requireRowsAffected(result, "updating loyalty")
}

// DeleteClient removes a client.
func (r *clientRepository) DeleteClient(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting client ID %d", id))
	}
	return requireRowsAffected(result, "deleting client")
}

func requireRowsAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
