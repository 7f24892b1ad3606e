package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRecordStatus string

const (
	PaymentRecordStatusInitiated PaymentRecordStatus = "INITIATED"
	PaymentRecordStatusSucceeded PaymentRecordStatus = "SUCCEEDED"
	PaymentRecordStatusFailed    PaymentRecordStatus = "FAILED"
	PaymentRecordStatusRefunded  PaymentRecordStatus = "REFUNDED"
)

// Payment is one monetary transfer attempt for a consultation.
// ProviderShare + PlatformFee always equals Amount. IdempotencyKey,
// when present, is unique across all payment records so a client retry
// can never create a second charge for the same logical payment.
//
// GatewayRef is the reference this service generates and sends to the
// gateway; it is written before the charge so gateway webhooks can be
// matched back to an in-flight record. TransactionID is the id the
// gateway issues once a charge goes through.
type Payment struct {
	ID              string              `json:"id"`
	ConsultationID  string              `json:"consultation_id"`
	Amount          decimal.Decimal     `json:"amount"`
	Currency        string              `json:"currency"`
	Method          PaymentMethod       `json:"method"`
	Status          PaymentRecordStatus `json:"status"`
	ProviderShare   decimal.Decimal     `json:"provider_share"`
	PlatformFee     decimal.Decimal     `json:"platform_fee"`
	GatewayRef      string              `json:"gateway_ref,omitempty"`
	TransactionID   string              `json:"transaction_id,omitempty"`
	IdempotencyKey  string              `json:"idempotency_key,omitempty"`
	FailureReason   string              `json:"failure_reason,omitempty"`
	WebhookVerified bool                `json:"webhook_verified"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
