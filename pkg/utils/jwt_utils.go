package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecretKey signs and verifies every token this backend issues.
var jwtSecretKey = []byte(Getenv("JWT_SECRET", "dev-only-salao-estetica-jwt-secret"))

const (
	AccessTokenTTL   = 15 * time.Minute
	RefreshTokenTTL  = 7 * 24 * time.Hour
	RecoveryTokenTTL = time.Hour
	TwoFASessionTTL  = 15 * time.Minute
)

// Token types carried in the claims. Redemption paths must check the type
// before trusting a token for anything other than plain API access.
const (
	TokenTypeAccess           = "access"
	TokenTypeRefresh          = "refresh"
	TokenTypePasswordRecovery = "password_recovery"
	TokenTypeTwoFASession     = "twofa_session"
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID    int64  `json:"user_id"`
	ClinicID  string `json:"clinic_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a new JWT access token bound to a user and clinic.
func GenerateAccessToken(userID int64, clinicID, email, role string) (string, error) {
	claims := &Claims{
		UserID:    userID,
		ClinicID:  clinicID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "salao-estetica-backend",
		},
	}
	return signClaims(claims)
}

// GenerateRefreshToken creates a longer-lived token carrying only the user ID.
func GenerateRefreshToken(userID int64) (string, error) {
	claims := &Claims{
		UserID:    userID,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "salao-estetica-backend",
		},
	}
	return signClaims(claims)
}

// GenerateTypedToken creates a special-purpose token (password recovery,
// post-2FA session) with an explicit TTL.
func GenerateTypedToken(userID int64, email, tokenType string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "salao-estetica-backend",
		},
	}
	return signClaims(claims)
}

func signClaims(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
