package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"salao_backend/internal/providers"
	"salao_backend/internal/repositories"
	"salao_backend/pkg/utils"
)

// PasswordRecoveryService drives the forgot-password flow. RequestRecovery
// never reveals whether an email is registered.
type PasswordRecoveryService interface {
	RequestRecovery(email, resetBaseURL string) error
	ResetPassword(token, newPassword string) error
}

type passwordRecoveryService struct {
	userRepo repositories.UserRepository
	mailer   providers.Mailer
}

// NewPasswordRecoveryService creates a new instance of PasswordRecoveryService.
func NewPasswordRecoveryService(userRepo repositories.UserRepository, mailer providers.Mailer) PasswordRecoveryService {
	return &passwordRecoveryService{userRepo: userRepo, mailer: mailer}
}

// RequestRecovery emails a reset link when the account exists. Unknown
// emails succeed silently so the endpoint cannot be used for enumeration.
func (s *passwordRecoveryService) RequestRecovery(email, resetBaseURL string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.LogInfo("password recovery requested for unknown email")
			return nil
		}
		return err
	}

	token, err := utils.GenerateTypedToken(user.ID, user.Email, utils.TokenTypePasswordRecovery, utils.RecoveryTokenTTL)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Olá %s,\n\nRecebemos um pedido de redefinição de senha. Use o link abaixo (válido por 1 hora):\n\n%s?token=%s\n\nSe você não fez esse pedido, ignore este email.",
		user.FullName, resetBaseURL, token,
	)
	if err := s.mailer.SendMail(user.Email, "Redefinição de senha", body); err != nil {
		utils.LogError(fmt.Errorf("sending recovery mail: %w", err))
	}
	return nil
}

// ResetPassword redeems a recovery token and sets the new password.
func (s *passwordRecoveryService) ResetPassword(token, newPassword string) error {
	claims, err := utils.ValidateToken(token)
	if err != nil || claims.TokenType != utils.TokenTypePasswordRecovery {
		return ErrInvalidToken
	}
	if !utils.IsValidPasswordLength(newPassword, minPasswordLength) {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(claims.UserID, string(hash)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}
