package contracts

import (
	"context"

	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/dto/requests"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Payment, error)
	FindByGatewayRef(ctx context.Context, gatewayRef string) (*models.Payment, error)
	FindByConsultationID(ctx context.Context, consultationID string) ([]models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) (*models.Payment, error)
}

type PaymentUsecase interface {
	HandleGatewayWebhook(ctx context.Context, signature string, body []byte) (*requests.GatewayWebhookPayload, error)
}
