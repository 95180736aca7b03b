package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes.
var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrDocumentExists     = errors.New("document already registered")
	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryInUse      = errors.New("category has products or services attached")
	ErrSlotTaken          = errors.New("time slot not available")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account temporarily blocked")
	ErrTwoFactorRequired  = errors.New("two-factor code required")
	ErrInvalidTwoFactor   = errors.New("invalid two-factor code")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrBackupInProgress   = errors.New("backup already in progress")
	ErrValidation         = errors.New("validation failed")
)

// BlockedError carries how long a throttled login pair stays blocked.
type BlockedError struct {
	Minutes int
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("account temporarily blocked for %d minutes", e.Minutes)
}

func (e *BlockedError) Is(target error) bool {
	return target == ErrAccountBlocked
}
