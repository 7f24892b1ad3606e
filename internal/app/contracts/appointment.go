package contracts

import (
	"context"

	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/dto/requests"
	"zahara-service/internal/pkg/dto/responses"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, requesterEmail string, request *requests.CreateAppointmentRequest, meta *requests.RequestMeta) (*responses.AppointmentResponse, error)
	Transition(ctx context.Context, requesterEmail, appointmentID string, action models.AuditAction, request *requests.TransitionRequest, meta *requests.RequestMeta) (*responses.AppointmentResponse, error)
	GetAuditTrail(ctx context.Context, appointmentID string) ([]models.AuditTrail, error)
}
