package models

import "time"

// Loyalty tiers, ordered from lowest to highest.
const (
	TierBronze   = "Bronze"
	TierPrata    = "Prata"
	TierOuro     = "Ouro"
	TierDiamante = "Diamante"
)

// Client represents a customer of the clinic. Name, email, phone and birth
// date are stored encrypted at rest; the repository applies the codec, so
// this struct always carries plaintext.
type Client struct {
	ID            int64     `json:"id" db:"id"`
	FullName      string    `json:"full_name" db:"full_name" binding:"required"`
	Email         string    `json:"email" db:"email" binding:"required"`
	PhoneNumber   string    `json:"phone_number" db:"phone_number" binding:"required"`
	DateOfBirth   *string   `json:"date_of_birth,omitempty" db:"date_of_birth"` // YYYY-MM-DD
	Address       *string   `json:"address,omitempty" db:"address"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	LoyaltyPoints int       `json:"loyalty_points" db:"loyalty_points"`
	LoyaltyTier   string    `json:"loyalty_tier" db:"loyalty_tier"`
	TotalSpent    float64   `json:"total_spent" db:"total_spent"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// LoyaltyProgram is the per-client loyalty overview returned by /loyalty.
type LoyaltyProgram struct {
	ClientID          int64   `json:"client_id"`
	Name              string  `json:"name"`
	Points            int     `json:"points"`
	Level             string  `json:"level"`
	TotalSpent        float64 `json:"total_spent"`
	NextLevel         string  `json:"next_level"`
	PointsToNextLevel int     `json:"points_to_next_level"`
}
