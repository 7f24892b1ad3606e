package appointments

import (
	"context"
	"errors"
	"time"

	"zahara-service/internal/app/contracts"
	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/dto/requests"
	"zahara-service/internal/pkg/dto/responses"
	"zahara-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	AuditTrailRepository  contracts.AuditTrailRepository
	UserRepository        contracts.UserRepository
	ProviderRepository    contracts.ProviderRepository
	Logger                *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	auditTrailRepository contracts.AuditTrailRepository,
	userRepository contracts.UserRepository,
	providerRepository contracts.ProviderRepository,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		AuditTrailRepository:  auditTrailRepository,
		UserRepository:        userRepository,
		ProviderRepository:    providerRepository,
		Logger:                logger,
	}
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, requesterEmail string, request *requests.CreateAppointmentRequest, meta *requests.RequestMeta) (*responses.AppointmentResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if !request.ScheduledAt.After(time.Now()) {
		return nil, exceptions.ErrScheduledAtNotFuture(nil)
	}

	client, err := uc.UserRepository.FindByEmail(ctx, requesterEmail)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	provider, err := uc.ProviderRepository.FindByID(ctx, request.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, exceptions.ErrProviderNotExist(nil)
	}

	now := time.Now().UTC()
	appointment := &models.Appointment{
		ClientID:      client.ID,
		ClientEmail:   client.Email,
		ProviderID:    provider.ID,
		ScheduledAt:   request.ScheduledAt,
		Status:        models.AppointmentStatusPending,
		PaymentStatus: models.AppointmentPaymentStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	appointment, err = uc.AppointmentRepository.Create(ctx, appointment)
	if err != nil {
		return nil, err
	}

	if err := uc.recordAudit(ctx, appointment, client.ID, models.AuditActionCreated, "", "", string(appointment.Status), meta); err != nil {
		return nil, err
	}

	uc.Logger.Info("appointment created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("appointment_id", appointment.ID),
		zap.String("provider_id", provider.ID),
	)

	return appointmentResponse(appointment), nil
}

// Transition applies one guarded action to the appointment. Exactly one
// audit entry is recorded per applied transition; a refused guard
// records nothing and leaves the appointment untouched.
func (uc *appointmentUsecase) Transition(ctx context.Context, requesterEmail, appointmentID string, action models.AuditAction, request *requests.TransitionRequest, meta *requests.RequestMeta) (*responses.AppointmentResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}

	actor, err := uc.UserRepository.FindByEmail(ctx, requesterEmail)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	previousStatus, err := uc.applyTransition(appointment, action, request.Details)
	if err != nil {
		var notAllowed *models.ErrTransitionNotAllowed
		if errors.As(err, &notAllowed) {
			return nil, exceptions.ErrInvalidStateTransition(err)
		}
		return nil, err
	}
	newStatus := currentStatusFor(appointment, action)

	appointment.UpdatedAt = time.Now().UTC()
	appointment, err = uc.AppointmentRepository.Update(ctx, appointment)
	if err != nil {
		return nil, err
	}

	if err := uc.recordAudit(ctx, appointment, actor.ID, action, request.Details, previousStatus, newStatus, meta); err != nil {
		return nil, err
	}

	uc.Logger.Info("appointment transitioned",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("appointment_id", appointment.ID),
		zap.String("action", string(action)),
		zap.String("previous_status", previousStatus),
		zap.String("new_status", newStatus),
	)

	return appointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) GetAuditTrail(ctx context.Context, appointmentID string) ([]models.AuditTrail, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}
	return uc.AuditTrailRepository.FindByAppointmentID(ctx, appointmentID)
}

// applyTransition dispatches to the state machine and returns the status
// the action started from, so the audit entry can record the change.
func (uc *appointmentUsecase) applyTransition(appointment *models.Appointment, action models.AuditAction, details string) (string, error) {
	previousStatus := currentStatusFor(appointment, action)

	switch action {
	case models.AuditActionApproved:
		return previousStatus, appointment.Approve()
	case models.AuditActionDeclined:
		return previousStatus, appointment.Decline(details)
	case models.AuditActionCancelled:
		return previousStatus, appointment.Cancel(details)
	case models.AuditActionCompleted:
		return previousStatus, appointment.Complete()
	case models.AuditActionNoShow:
		return previousStatus, appointment.MarkNoShow()
	case models.AuditActionMarkedPaid:
		return previousStatus, appointment.MarkAsPaid()
	case models.AuditActionRefunded:
		return previousStatus, appointment.Refund()
	default:
		return previousStatus, exceptions.ErrInputValidation(errors.New("unknown appointment action"))
	}
}

// currentStatusFor reads from the machine the action operates on:
// payment actions track PaymentStatus, everything else booking Status.
func currentStatusFor(appointment *models.Appointment, action models.AuditAction) string {
	switch action {
	case models.AuditActionMarkedPaid, models.AuditActionRefunded:
		return string(appointment.PaymentStatus)
	default:
		return string(appointment.Status)
	}
}

func (uc *appointmentUsecase) recordAudit(ctx context.Context, appointment *models.Appointment, actorID string, action models.AuditAction, details, previousStatus, newStatus string, meta *requests.RequestMeta) error {
	entry := &models.AuditTrail{
		AppointmentID:  appointment.ID,
		ActorID:        actorID,
		Action:         action,
		Details:        details,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		CreatedAt:      time.Now().UTC(),
	}
	if meta != nil {
		entry.IPAddress = meta.IPAddress
		entry.UserAgent = meta.UserAgent
	}
	_, err := uc.AuditTrailRepository.Record(ctx, entry)
	return err
}

func appointmentResponse(appointment *models.Appointment) *responses.AppointmentResponse {
	return &responses.AppointmentResponse{
		ID:            appointment.ID,
		ClientID:      appointment.ClientID,
		ProviderID:    appointment.ProviderID,
		ScheduledAt:   appointment.ScheduledAt,
		Status:        string(appointment.Status),
		PaymentStatus: string(appointment.PaymentStatus),
		Reason:        appointment.Reason,
	}
}
