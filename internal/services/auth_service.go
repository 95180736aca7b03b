package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
	"salao_backend/pkg/utils"
)

const minPasswordLength = 8

// LoginResult is the outcome of a credential check. When the account has
// 2FA enabled no access token is issued; the caller gets a short-lived
// session token to redeem together with the TOTP code.
type LoginResult struct {
	RequiresTwoFactor bool         `json:"requires_two_factor"`
	SessionToken      string       `json:"session_token,omitempty"`
	AccessToken       string       `json:"access_token,omitempty"`
	RefreshToken      string       `json:"refresh_token,omitempty"`
	User              *models.User `json:"user,omitempty"`
}

// AuthService handles signup, login, token refresh and password changes.
type AuthService interface {
	Signup(registration ClinicRegistration) (*models.Clinic, *models.User, string, error)
	Login(email, password, ip string) (*LoginResult, error)
	Refresh(refreshToken string) (*LoginResult, error)
	ChangePassword(userID int64, currentPassword, newPassword string) error
	GetUser(userID int64) (*models.User, error)
}

type authService struct {
	userRepo      repositories.UserRepository
	clinicService ClinicService
	attempts      *LoginAttemptTracker
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repositories.UserRepository, clinicService ClinicService, attempts *LoginAttemptTracker) AuthService {
	return &authService{userRepo: userRepo, clinicService: clinicService, attempts: attempts}
}

// Signup registers a clinic and its first admin user in one step. It
// returns the payment URL of the first invoice when billing is live.
func (s *authService) Signup(registration ClinicRegistration) (*models.Clinic, *models.User, string, error) {
	if !utils.IsValidEmail(registration.Email) {
		return nil, nil, "", fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if !utils.IsValidPasswordLength(registration.Password, minPasswordLength) {
		return nil, nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if _, err := s.userRepo.GetUserByEmail(registration.Email); err == nil {
		return nil, nil, "", ErrEmailExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, "", err
	}

	clinic, paymentURL, err := s.clinicService.RegisterClinic(registration)
	if err != nil {
		return nil, nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, "", fmt.Errorf("hashing password: %w", err)
	}
	user := &models.User{
		ClinicID:     clinic.ID,
		FullName:     registration.OwnerName,
		Email:        registration.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if _, err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, nil, "", ErrEmailExists
		}
		return nil, nil, "", err
	}
	return clinic, user, paymentURL, nil
}

// Login verifies credentials under the failed-attempt limiter. Accounts
// with 2FA enabled get a session token instead of access credentials.
func (s *authService) Login(email, password, ip string) (*LoginResult, error) {
	if blocked, minutes := s.attempts.IsBlocked(email, ip); blocked {
		return nil, &BlockedError{Minutes: minutes}
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.attempts.RecordFailure(email, ip)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if s.attempts.RecordFailure(email, ip) {
			return nil, &BlockedError{Minutes: int(blockDuration.Minutes())}
		}
		return nil, ErrInvalidCredentials
	}
	s.attempts.RecordSuccess(email, ip)

	if user.TwoFactorEnabled {
		session, err := utils.GenerateTypedToken(user.ID, user.Email, utils.TokenTypeTwoFASession, utils.TwoFASessionTTL)
		if err != nil {
			return nil, err
		}
		return &LoginResult{RequiresTwoFactor: true, SessionToken: session}, nil
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (*LoginResult, error) {
	access, err := utils.GenerateAccessToken(user.ID, user.ClinicID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Refresh trades a valid refresh token for a fresh token pair.
func (s *authService) Refresh(refreshToken string) (*LoginResult, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *authService) ChangePassword(userID int64, currentPassword, newPassword string) error {
	if !utils.IsValidPasswordLength(newPassword, minPasswordLength) {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.userRepo.UpdatePassword(userID, string(hash))
}

func (s *authService) GetUser(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
