package contracts

import (
	"context"

	"zahara-service/internal/app/models"

	"github.com/shopspring/decimal"
)

// GatewayPaymentInput carries the amount plus the method-specific
// credential; only the field matching the method is consulted.
type GatewayPaymentInput struct {
	Amount      decimal.Decimal
	Currency    string
	Method      models.PaymentMethod
	PhoneNumber string
	BankAccount string
	CardToken   string
	Reference   string
}

// GatewayPaymentResult is the uniform outcome of a gateway call.
// Business-level failures (bad phone, bad card, declined transfer) are
// carried in ErrorMessage with Success false; they are never Go errors.
type GatewayPaymentResult struct {
	Success       bool
	TransactionID string
	Message       string
	ErrorMessage  string
}

type PaymentGatewayService interface {
	ProcessPayment(ctx context.Context, input *GatewayPaymentInput) (*GatewayPaymentResult, error)
}
