package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ConsultationType string

const (
	ConsultationTypeVideo    ConsultationType = "video"
	ConsultationTypePhone    ConsultationType = "phone"
	ConsultationTypeInPerson ConsultationType = "in_person"
	ConsultationTypeChat     ConsultationType = "chat"
)

type ConsultationStatus string

const (
	ConsultationStatusPendingPayment ConsultationStatus = "PENDING_PAYMENT"
	ConsultationStatusScheduled      ConsultationStatus = "SCHEDULED"
	ConsultationStatusCompleted      ConsultationStatus = "COMPLETED"
	ConsultationStatusCancelled      ConsultationStatus = "CANCELLED"
	ConsultationStatusNoShow         ConsultationStatus = "NO_SHOW"
)

type ConsultationPaymentStatus string

const (
	PaymentStatusPending    ConsultationPaymentStatus = "PENDING"
	PaymentStatusProcessing ConsultationPaymentStatus = "PROCESSING"
	PaymentStatusCompleted  ConsultationPaymentStatus = "COMPLETED"
	PaymentStatusFailed     ConsultationPaymentStatus = "FAILED"
	PaymentStatusRefunded   ConsultationPaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodMTNMobileMoney PaymentMethod = "MTN_MOBILE_MONEY"
	PaymentMethodAirtelMoney    PaymentMethod = "AIRTEL_MONEY"
	PaymentMethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard           PaymentMethod = "CARD"
	PaymentMethodCash           PaymentMethod = "CASH"
)

// SupportedPaymentMethods is the capability listing returned to clients.
// CASH is listed because in-person consultations can settle at the
// clinic; the gateway itself never processes it.
var SupportedPaymentMethods = []PaymentMethod{
	PaymentMethodMTNMobileMoney,
	PaymentMethodAirtelMoney,
	PaymentMethodBankTransfer,
	PaymentMethodCard,
	PaymentMethodCash,
}

// Consultation is a booked client-provider interaction. Monetary fields
// always satisfy TotalAmount == ConsultationFee + AppFee; they are
// computed once by the fee policy at booking time and never recomputed.
// Records are never hard-deleted, cancellation is a status.
type Consultation struct {
	ID                   string                    `json:"id"`
	ClientID             string                    `json:"client_id"`
	ClientEmail          string                    `json:"client_email"`
	ProviderID           string                    `json:"provider_id"`
	ScheduledAt          time.Time                 `json:"scheduled_at"`
	Type                 ConsultationType          `json:"type"`
	Status               ConsultationStatus        `json:"status"`
	ConsultationFee      decimal.Decimal           `json:"consultation_fee"`
	AppFee               decimal.Decimal           `json:"app_fee"`
	TotalAmount          decimal.Decimal           `json:"total_amount"`
	PaymentStatus        ConsultationPaymentStatus `json:"payment_status"`
	PaymentMethod        PaymentMethod             `json:"payment_method,omitempty"`
	PaymentTransactionID string                    `json:"payment_transaction_id,omitempty"`
	PaidAt               *time.Time                `json:"paid_at,omitempty"`
	ClientNotes          string                    `json:"client_notes,omitempty"`
	ProviderNotes        string                    `json:"provider_notes,omitempty"`
	CreatedAt            time.Time                 `json:"created_at"`
	UpdatedAt            time.Time                 `json:"updated_at"`
}

// IsOwnedBy reports whether the consultation belongs to the given
// requester identity.
func (c *Consultation) IsOwnedBy(email string) bool {
	return c.ClientEmail == email
}
