package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salao_backend/internal/crypto"
	"salao_backend/internal/models"
)

func newClientRepoFixture(t *testing.T) (ClientRepository, *crypto.Codec, sqlmock.Sqlmock, SQLExecutor) {
	t.Helper()
	codec, err := crypto.NewCodec([]byte("dev-only-32-byte-encryption-key!"))
	require.NoError(t, err)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewClientRepository(codec), codec, mock, db
}

func clientRowColumns() []string {
	return []string{
		"id", "full_name", "email", "email_digest", "phone_number", "date_of_birth",
		"address", "notes", "loyalty_points", "loyalty_tier", "total_spent", "created_at", "updated_at",
	}
}

func sealedClientRow(t *testing.T, codec *crypto.Codec, id int64, name, email, phone string) *sqlmock.Rows {
	t.Helper()
	sealedName, err := codec.Encrypt(name)
	require.NoError(t, err)
	sealedEmail, err := codec.Encrypt(email)
	require.NoError(t, err)
	sealedPhone, err := codec.Encrypt(phone)
	require.NoError(t, err)
	now := time.Now()
	return sqlmock.NewRows(clientRowColumns()).AddRow(
		id, sealedName, sealedEmail, crypto.Digest(email), sealedPhone, nil,
		nil, nil, 0, models.TierBronze, 0.0, now, now,
	)
}

func TestCreateClientSealsPIIAndDigestsEmail(t *testing.T) {
	repo, _, mock, db := newClientRepoFixture(t)

	mock.ExpectQuery("INSERT INTO clientes").
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), crypto.Digest("joana@example.com"), sqlmock.AnyArg(),
			nil, nil, nil, 0, models.TierBronze, 0.0, sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	client := &models.Client{
		FullName:    "Joana Lima",
		Email:       "joana@example.com",
		PhoneNumber: "11988887777",
		LoyaltyTier: models.TierBronze,
	}
	id, err := repo.CreateClient(db, client)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), client.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClientDuplicateEmail(t *testing.T) {
	repo, _, mock, db := newClientRepoFixture(t)

	mock.ExpectQuery("INSERT INTO clientes").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "clientes_email_digest_key"})

	_, err := repo.CreateClient(db, &models.Client{
		FullName: "Joana Lima", Email: "joana@example.com", PhoneNumber: "11988887777",
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestGetClientByIDOpensPII(t *testing.T) {
	repo, codec, mock, db := newClientRepoFixture(t)

	mock.ExpectQuery("SELECT (.+) FROM clientes WHERE id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sealedClientRow(t, codec, 7, "Joana Lima", "joana@example.com", "11988887777"))

	client, err := repo.GetClientByID(db, 7)
	require.NoError(t, err)
	assert.Equal(t, "Joana Lima", client.FullName)
	assert.Equal(t, "joana@example.com", client.Email)
	assert.Equal(t, "11988887777", client.PhoneNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClientByIDNotFound(t *testing.T) {
	repo, _, mock, db := newClientRepoFixture(t)

	mock.ExpectQuery("SELECT (.+) FROM clientes WHERE id = \\$1").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(clientRowColumns()))

	_, err := repo.GetClientByID(db, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetClientByEmailQueriesDigest(t *testing.T) {
	repo, codec, mock, db := newClientRepoFixture(t)

	mock.ExpectQuery("SELECT (.+) FROM clientes WHERE email_digest = \\$1").
		WithArgs(crypto.Digest("joana@example.com")).
		WillReturnRows(sealedClientRow(t, codec, 7, "Joana Lima", "joana@example.com", "11988887777"))

	client, err := repo.GetClientByEmail(db, "joana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), client.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLoyalty(t *testing.T) {
	repo, _, mock, db := newClientRepoFixture(t)

	mock.ExpectExec("UPDATE clientes SET loyalty_points = \\$1, loyalty_tier = \\$2").
		WithArgs(650, models.TierPrata, sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateLoyalty(db, 7, 650, models.TierPrata))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClientNotFound(t *testing.T) {
	repo, _, mock, db := newClientRepoFixture(t)

	mock.ExpectExec("DELETE FROM clientes WHERE id = \\$1").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteClient(db, 99), ErrNotFound)
}
