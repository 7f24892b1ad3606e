package requests

import "time"

type BookConsultationRequest struct {
	ProviderID  string    `json:"provider_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=video phone in_person chat"`
	ClientNotes string    `json:"client_notes,omitempty" validate:"max=2000"`
}

// ProcessPaymentRequest deliberately does not mark payment_method as
// required: an absent method is dispatched to the gateway, which
// answers with its uniform unsupported-method failure instead of a
// validation error.
type ProcessPaymentRequest struct {
	PaymentMethod  string `json:"payment_method"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	BankAccount    string `json:"bank_account,omitempty"`
	CardToken      string `json:"card_token,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty" validate:"omitempty,max=128"`
}
