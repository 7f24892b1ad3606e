package responses

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookConsultationResponse is the booking confirmation. Monetary fields
// are serialized as decimal strings to keep 2-digit currency precision
// on the wire.
type BookConsultationResponse struct {
	ConsultationID  string          `json:"consultation_id"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	AppFee          decimal.Decimal `json:"app_fee"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

type PaymentResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id,omitempty"`
	PaymentStatus string `json:"payment_status"`
}

type ConsultationResponse struct {
	ID              string          `json:"id"`
	ProviderID      string          `json:"provider_id"`
	ScheduledAt     time.Time       `json:"scheduled_at"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	AppFee          decimal.Decimal `json:"app_fee"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ClientNotes     string          `json:"client_notes,omitempty"`
}
