package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"

	"github.com/pquerna/otp/totp"

	"salao_backend/internal/repositories"
	"salao_backend/pkg/utils"
)

const totpIssuer = "SalaoEstetica"

// TwoFactorSetup is handed to the client during enrollment.
type TwoFactorSetup struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
	QRCodePNG  string `json:"qr_code"` // base64-encoded PNG
}

// TwoFactorService manages TOTP enrollment and verification.
type TwoFactorService interface {
	BeginSetup(userID int64) (*TwoFactorSetup, error)
	ConfirmSetup(userID int64, code string) error
	Disable(userID int64, code string) error
	VerifyLogin(sessionToken, code string) (*LoginResult, error)
}

type twoFactorService struct {
	userRepo repositories.UserRepository
	auth     AuthService
}

// NewTwoFactorService creates a new instance of TwoFactorService.
func NewTwoFactorService(userRepo repositories.UserRepository, auth AuthService) TwoFactorService {
	return &twoFactorService{userRepo: userRepo, auth: auth}
}

// BeginSetup generates a fresh secret and QR code. The secret is stored but
// 2FA stays off until ConfirmSetup proves the authenticator works.
func (s *twoFactorService) BeginSetup(userID int64) (*TwoFactorSetup, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("generating TOTP key: %w", err)
	}

	img, err := key.Image(200, 200)
	if err != nil {
		return nil, fmt.Errorf("rendering TOTP QR code: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding TOTP QR code: %w", err)
	}

	secret := key.Secret()
	if err := s.userRepo.SetTwoFactorSecret(userID, &secret); err != nil {
		return nil, err
	}
	return &TwoFactorSetup{
		Secret:     secret,
		OTPAuthURL: key.URL(),
		QRCodePNG:  base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

func (s *twoFactorService) verifyCode(userID int64, code string) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.TwoFactorSecret == nil {
		return ErrInvalidTwoFactor
	}
	if !totp.Validate(code, *user.TwoFactorSecret) {
		return ErrInvalidTwoFactor
	}
	return nil
}

// ConfirmSetup turns 2FA on once the user proves a valid code.
func (s *twoFactorService) ConfirmSetup(userID int64, code string) error {
	if err := s.verifyCode(userID, code); err != nil {
		return err
	}
	return s.userRepo.SetTwoFactorEnabled(userID, true)
}

// Disable turns 2FA off after a final code check and wipes the secret.
func (s *twoFactorService) Disable(userID int64, code string) error {
	if err := s.verifyCode(userID, code); err != nil {
		return err
	}
	if err := s.userRepo.SetTwoFactorEnabled(userID, false); err != nil {
		return err
	}
	return s.userRepo.SetTwoFactorSecret(userID, nil)
}

// VerifyLogin redeems a 2FA session token plus a TOTP code for the real
// token pair.
func (s *twoFactorService) VerifyLogin(sessionToken, code string) (*LoginResult, error) {
	claims, err := utils.ValidateToken(sessionToken)
	if err != nil || claims.TokenType != utils.TokenTypeTwoFASession {
		return nil, ErrInvalidToken
	}
	if err := s.verifyCode(claims.UserID, code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, err
	}
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
