package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider is a verified health professional offering consultations.
// ConsultationFee is the provider-configured base fee before the
// platform share is added.
type Provider struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	FullName        string          `json:"full_name"`
	Specialty       string          `json:"specialty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Verified        bool            `json:"verified"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
