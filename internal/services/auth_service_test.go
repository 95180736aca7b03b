package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"salao_backend/internal/models"
	"salao_backend/pkg/utils"
)

func newAuthFixture(t *testing.T, twoFactor bool) (AuthService, *fakeUserRepository, *LoginAttemptTracker) {
	t.Helper()
	userRepo := newFakeUserRepository()
	tracker := NewLoginAttemptTracker()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = userRepo.CreateUser(&models.User{
		ClinicID:         uuid.New(),
		FullName:         "Dona do Salão",
		Email:            "dona@example.com",
		PasswordHash:     string(hash),
		Role:             models.RoleAdmin,
		TwoFactorEnabled: twoFactor,
	})
	require.NoError(t, err)

	return NewAuthService(userRepo, nil, tracker), userRepo, tracker
}

func TestLoginSuccess(t *testing.T) {
	auth, _, _ := newAuthFixture(t, false)

	result, err := auth.Login("dona@example.com", "senha-segura", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, result.RequiresTwoFactor)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	claims, err := utils.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, utils.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _, _ := newAuthFixture(t, false)

	_, err := auth.Login("dona@example.com", "errada", "1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailCountsAsFailure(t *testing.T) {
	auth, _, tracker := newAuthFixture(t, false)

	for i := 0; i < 5; i++ {
		_, err := auth.Login("fantasma@example.com", "qualquer", "1.2.3.4")
		assert.Error(t, err)
	}
	blocked, _ := tracker.IsBlocked("fantasma@example.com", "1.2.3.4")
	assert.True(t, blocked)
}

func TestLoginBlocksAfterRepeatedFailures(t *testing.T) {
	auth, _, _ := newAuthFixture(t, false)

	var err error
	for i := 0; i < 5; i++ {
		_, err = auth.Login("dona@example.com", "errada", "1.2.3.4")
	}
	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, 15, blocked.Minutes)

	// Even the right password is refused while blocked.
	_, err = auth.Login("dona@example.com", "senha-segura", "1.2.3.4")
	assert.ErrorIs(t, err, ErrAccountBlocked)
}

func TestLoginSuccessDoesNotEraseFailures(t *testing.T) {
	auth, _, tracker := newAuthFixture(t, false)

	for i := 0; i < 4; i++ {
		auth.Login("dona@example.com", "errada", "1.2.3.4")
	}
	_, err := auth.Login("dona@example.com", "senha-segura", "1.2.3.4")
	require.NoError(t, err)

	blocked, _ := tracker.IsBlocked("dona@example.com", "1.2.3.4")
	assert.False(t, blocked)
	assert.Equal(t, 1, tracker.RemainingAttempts("dona@example.com", "1.2.3.4"))

	// The fifth failure within the window blocks even after the
	// successful login in between.
	var blockedErr *BlockedError
	_, err = auth.Login("dona@example.com", "errada", "1.2.3.4")
	require.ErrorAs(t, err, &blockedErr)
	blocked, _ = tracker.IsBlocked("dona@example.com", "1.2.3.4")
	assert.True(t, blocked)
}

func TestLoginWithTwoFactorReturnsSessionToken(t *testing.T) {
	auth, _, _ := newAuthFixture(t, true)

	result, err := auth.Login("dona@example.com", "senha-segura", "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, result.RequiresTwoFactor)
	assert.Empty(t, result.AccessToken)

	claims, err := utils.ValidateToken(result.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, utils.TokenTypeTwoFASession, claims.TokenType)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	auth, _, _ := newAuthFixture(t, false)

	access, err := utils.GenerateAccessToken(1, uuid.NewString(), "dona@example.com", models.RoleAdmin)
	require.NoError(t, err)
	_, err = auth.Refresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	auth, _, _ := newAuthFixture(t, false)

	refresh, err := utils.GenerateRefreshToken(1)
	require.NoError(t, err)
	result, err := auth.Refresh(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "dona@example.com", result.User.Email)
}

func TestChangePassword(t *testing.T) {
	auth, userRepo, _ := newAuthFixture(t, false)

	assert.ErrorIs(t, auth.ChangePassword(1, "errada", "nova-senha-longa"), ErrInvalidCredentials)
	assert.ErrorIs(t, auth.ChangePassword(1, "senha-segura", "curta"), ErrValidation)

	require.NoError(t, auth.ChangePassword(1, "senha-segura", "nova-senha-longa"))
	user, err := userRepo.GetUserByID(1)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("nova-senha-longa")))
}

func TestRecoveryTokenHasRightTypeAndTTL(t *testing.T) {
	token, err := utils.GenerateTypedToken(1, "dona@example.com", utils.TokenTypePasswordRecovery, utils.RecoveryTokenTTL)
	require.NoError(t, err)

	claims, err := utils.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, utils.TokenTypePasswordRecovery, claims.TokenType)
	assert.WithinDuration(t, time.Now().Add(utils.RecoveryTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}
