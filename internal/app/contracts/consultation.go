package contracts

import (
	"context"

	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/dto/requests"
	"zahara-service/internal/pkg/dto/responses"
)

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error)
	FindByID(ctx context.Context, consultationID string) (*models.Consultation, error)
	Update(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error)
}

type ConsultationUsecase interface {
	BookConsultation(ctx context.Context, requesterEmail string, request *requests.BookConsultationRequest) (*responses.BookConsultationResponse, error)
	ProcessPayment(ctx context.Context, requesterEmail, consultationID string, request *requests.ProcessPaymentRequest) (*responses.PaymentResponse, error)
	GetPaymentMethods(ctx context.Context, consultationID string) ([]models.PaymentMethod, error)
	GetConsultation(ctx context.Context, requesterEmail, consultationID string) (*responses.ConsultationResponse, error)
}
