package consultations

import (
	"context"
	"fmt"
	"time"

	"zahara-service/internal/app/config"
	"zahara-service/internal/app/contracts"
	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/dto/requests"
	"zahara-service/internal/pkg/dto/responses"
	"zahara-service/internal/pkg/exceptions"
	"zahara-service/internal/pkg/money"
	"zahara-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	eventConsultationBooked = "consultation.booked"
	eventPaymentSucceeded   = "consultation.payment_succeeded"
	eventPaymentFailed      = "consultation.payment_failed"

	paymentReferencePrefix = "PAY"
)

type consultationUsecase struct {
	ConsultationRepository contracts.ConsultationRepository
	UserRepository         contracts.UserRepository
	ProviderRepository     contracts.ProviderRepository
	PaymentRepository      contracts.PaymentRepository
	PaymentGatewayService  contracts.PaymentGatewayService
	LockerService          contracts.LockerService
	EventQueueService      contracts.EventQueueService
	InternalConfig         *config.InternalConfig
	Logger                 *zap.Logger
	FeePolicy              money.FeePolicy
}

func NewConsultationUsecase(
	consultationRepository contracts.ConsultationRepository,
	userRepository contracts.UserRepository,
	providerRepository contracts.ProviderRepository,
	paymentRepository contracts.PaymentRepository,
	paymentGatewayService contracts.PaymentGatewayService,
	lockerService contracts.LockerService,
	eventQueueService contracts.EventQueueService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) (contracts.ConsultationUsecase, error) {
	rate, err := decimal.NewFromString(internalConfig.Payment.PlatformFeeRate)
	if err != nil {
		return nil, fmt.Errorf("invalid platform fee rate %q: %w", internalConfig.Payment.PlatformFeeRate, err)
	}
	return &consultationUsecase{
		ConsultationRepository: consultationRepository,
		UserRepository:         userRepository,
		ProviderRepository:     providerRepository,
		PaymentRepository:      paymentRepository,
		PaymentGatewayService:  paymentGatewayService,
		LockerService:          lockerService,
		EventQueueService:      eventQueueService,
		InternalConfig:         internalConfig,
		Logger:                 logger,
		FeePolicy:              money.NewFeePolicy(rate),
	}, nil
}

func (uc *consultationUsecase) BookConsultation(ctx context.Context, requesterEmail string, request *requests.BookConsultationRequest) (*responses.BookConsultationResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if !request.ScheduledAt.After(time.Now()) {
		return nil, exceptions.ErrScheduledAtNotFuture(nil)
	}

	// Resolve requester and provider before anything is written
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

	fees := uc.FeePolicy.ComputeFees(provider.ConsultationFee)

	now := time.Now().UTC()
	consultation := &models.Consultation{
		ClientID:        client.ID,
		ClientEmail:     client.Email,
		ProviderID:      provider.ID,
		ScheduledAt:     request.ScheduledAt,
		Type:            models.ConsultationType(request.Type),
		Status:          models.ConsultationStatusPendingPayment,
		ConsultationFee: fees.ConsultationFee,
		AppFee:          fees.AppFee,
		TotalAmount:     fees.TotalAmount,
		PaymentStatus:   models.PaymentStatusPending,
		ClientNotes:     request.ClientNotes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	consultation, err = uc.ConsultationRepository.Create(ctx, consultation)
	if err != nil {
		return nil, err
	}

	uc.Logger.Info("consultation booked",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("consultation_id", consultation.ID),
		zap.String("provider_id", provider.ID),
		zap.String("total_amount", consultation.TotalAmount.String()),
	)
	uc.publishEvent(ctx, eventConsultationBooked, consultation)

	return &responses.BookConsultationResponse{
		ConsultationID:  consultation.ID,
		Status:          string(consultation.Status),
		PaymentStatus:   string(consultation.PaymentStatus),
		ConsultationFee: consultation.ConsultationFee,
		AppFee:          consultation.AppFee,
		TotalAmount:     consultation.TotalAmount,
	}, nil
}

func (uc *consultationUsecase) ProcessPayment(ctx context.Context, requesterEmail, consultationID string, request *requests.ProcessPaymentRequest) (*responses.PaymentResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	consultation, err := uc.ConsultationRepository.FindByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, exceptions.ErrConsultationNotExist(nil)
	}

	// Ownership is checked before the payment method is even looked at,
	// so a stranger probing someone else's consultation learns nothing
	// about which methods would have been accepted.
	if !consultation.IsOwnedBy(requesterEmail) {
		return nil, exceptions.ErrNotResourceOwner(nil)
	}

	lockKey := fmt.Sprintf(constvars.RedisKeyConsultationPaymentLock, consultation.ID)
	lockTTL := time.Duration(uc.InternalConfig.Payment.LockTTLSecs) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrPaymentLockNotAcquired(nil)
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); unlockErr != nil {
			uc.Logger.Warn("failed to release payment lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("lock_key", lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	// Re-read under the lock: the snapshot above may predate a charge
	// that settled while this caller was waiting, and the already-paid
	// check below must run against current state.
	consultation, err = uc.ConsultationRepository.FindByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, exceptions.ErrConsultationNotExist(nil)
	}

	if consultation.PaymentStatus == models.PaymentStatusCompleted {
		return &responses.PaymentResponse{
			Success:       true,
			Message:       constvars.PaymentSuccessMessage,
			TransactionID: consultation.PaymentTransactionID,
			PaymentStatus: string(consultation.PaymentStatus),
		}, nil
	}

	// A retried submit with the same idempotency key gets the stored
	// outcome; the gateway is never charged twice for one logical payment.
	if request.IdempotencyKey != "" {
		existing, err := uc.PaymentRepository.FindByIdempotencyKey(ctx, request.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return uc.paymentRecordResponse(existing)
		}
	}

	// The gateway reference is ours, not the gateway's, and it is
	// persisted before the charge so a webhook arriving for an
	// in-flight payment can always be matched to this record.
	now := time.Now().UTC()
	payment := &models.Payment{
		ConsultationID: consultation.ID,
		Amount:         consultation.TotalAmount,
		Currency:       uc.InternalConfig.Payment.Currency,
		Method:         models.PaymentMethod(request.PaymentMethod),
		Status:         models.PaymentRecordStatusInitiated,
		ProviderShare:  consultation.ConsultationFee,
		PlatformFee:    consultation.AppFee,
		GatewayRef:     utils.GenerateTransactionRef(paymentReferencePrefix),
		IdempotencyKey: request.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	payment, err = uc.PaymentRepository.Create(ctx, payment)
	if err != nil {
		return nil, err
	}

	consultation.PaymentStatus = models.PaymentStatusProcessing
	consultation.UpdatedAt = time.Now().UTC()
	if _, err := uc.ConsultationRepository.Update(ctx, consultation); err != nil {
		return nil, err
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, time.Duration(uc.InternalConfig.Payment.GatewayTimeoutSecs)*time.Second)
	defer cancel()

	result, err := uc.PaymentGatewayService.ProcessPayment(gatewayCtx, &contracts.GatewayPaymentInput{
		Amount:      consultation.TotalAmount,
		Currency:    uc.InternalConfig.Payment.Currency,
		Method:      models.PaymentMethod(request.PaymentMethod),
		PhoneNumber: request.PhoneNumber,
		BankAccount: request.BankAccount,
		CardToken:   request.CardToken,
		Reference:   payment.GatewayRef,
	})
	if err != nil {
		return nil, err
	}

	if !result.Success {
		return uc.settleFailedPayment(ctx, consultation, payment, result.ErrorMessage)
	}
	return uc.settleSucceededPayment(ctx, consultation, payment, result, models.PaymentMethod(request.PaymentMethod))
}

func (uc *consultationUsecase) GetPaymentMethods(ctx context.Context, consultationID string) ([]models.PaymentMethod, error) {
	consultation, err := uc.ConsultationRepository.FindByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, exceptions.ErrConsultationNotExist(nil)
	}
	return models.SupportedPaymentMethods, nil
}

func (uc *consultationUsecase) GetConsultation(ctx context.Context, requesterEmail, consultationID string) (*responses.ConsultationResponse, error) {
	consultation, err := uc.ConsultationRepository.FindByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, exceptions.ErrConsultationNotExist(nil)
	}
	if !consultation.IsOwnedBy(requesterEmail) {
		return nil, exceptions.ErrNotResourceOwner(nil)
	}

	return &responses.ConsultationResponse{
		ID:              consultation.ID,
		ProviderID:      consultation.ProviderID,
		ScheduledAt:     consultation.ScheduledAt,
		Type:            string(consultation.Type),
		Status:          string(consultation.Status),
		PaymentStatus:   string(consultation.PaymentStatus),
		PaymentMethod:   string(consultation.PaymentMethod),
		TransactionID:   consultation.PaymentTransactionID,
		PaidAt:          consultation.PaidAt,
		ConsultationFee: consultation.ConsultationFee,
		AppFee:          consultation.AppFee,
		TotalAmount:     consultation.TotalAmount,
		ClientNotes:     consultation.ClientNotes,
	}, nil
}

func (uc *consultationUsecase) settleSucceededPayment(ctx context.Context, consultation *models.Consultation, payment *models.Payment, result *contracts.GatewayPaymentResult, method models.PaymentMethod) (*responses.PaymentResponse, error) {
	now := time.Now().UTC()

	payment.Status = models.PaymentRecordStatusSucceeded
	payment.TransactionID = result.TransactionID
	payment.UpdatedAt = now
	if _, err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		return nil, err
	}

	consultation.Status = models.ConsultationStatusScheduled
	consultation.PaymentStatus = models.PaymentStatusCompleted
	consultation.PaymentMethod = method
	consultation.PaymentTransactionID = result.TransactionID
	consultation.PaidAt = &now
	consultation.UpdatedAt = now
	if _, err := uc.ConsultationRepository.Update(ctx, consultation); err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, eventPaymentSucceeded, consultation)

	return &responses.PaymentResponse{
		Success:       true,
		Message:       constvars.PaymentSuccessMessage,
		TransactionID: result.TransactionID,
		PaymentStatus: string(consultation.PaymentStatus),
	}, nil
}

func (uc *consultationUsecase) settleFailedPayment(ctx context.Context, consultation *models.Consultation, payment *models.Payment, reason string) (*responses.PaymentResponse, error) {
	now := time.Now().UTC()

	payment.Status = models.PaymentRecordStatusFailed
	payment.FailureReason = reason
	payment.UpdatedAt = now
	if _, err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		return nil, err
	}

	// The consultation stays bookable: a failed charge keeps it in
	// PENDING_PAYMENT so the client can retry with another method.
	consultation.PaymentStatus = models.PaymentStatusFailed
	consultation.UpdatedAt = now
	if _, err := uc.ConsultationRepository.Update(ctx, consultation); err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, eventPaymentFailed, consultation)

	return &responses.PaymentResponse{
		Success:       false,
		Message:       constvars.PaymentFailedMessagePrefix + reason,
		PaymentStatus: string(consultation.PaymentStatus),
	}, nil
}

// paymentRecordResponse rebuilds the original ProcessPayment response
// from a stored payment record on an idempotent replay.
func (uc *consultationUsecase) paymentRecordResponse(payment *models.Payment) (*responses.PaymentResponse, error) {
	switch payment.Status {
	case models.PaymentRecordStatusSucceeded:
		return &responses.PaymentResponse{
			Success:       true,
			Message:       constvars.PaymentSuccessMessage,
			TransactionID: payment.TransactionID,
			PaymentStatus: string(models.PaymentStatusCompleted),
		}, nil
	case models.PaymentRecordStatusFailed:
		return &responses.PaymentResponse{
			Success:       false,
			Message:       constvars.PaymentFailedMessagePrefix + payment.FailureReason,
			PaymentStatus: string(models.PaymentStatusFailed),
		}, nil
	default:
		// Still INITIATED: a concurrent attempt holds the outcome.
		return nil, exceptions.ErrPaymentLockNotAcquired(nil)
	}
}

// publishEvent is best-effort: a broker hiccup must never fail a booking
// or a settled payment.
func (uc *consultationUsecase) publishEvent(ctx context.Context, kind string, consultation *models.Consultation) {
	body, err := json.Marshal(map[string]string{
		"consultation_id": consultation.ID,
		"status":          string(consultation.Status),
		"payment_status":  string(consultation.PaymentStatus),
	})
	if err != nil {
		return
	}
	event := &contracts.LifecycleEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
		Body:       body,
	}
	if err := uc.EventQueueService.Publish(ctx, event); err != nil {
		uc.Logger.Warn("failed to publish lifecycle event",
			zap.String("event_kind", kind),
			zap.String("consultation_id", consultation.ID),
			zap.Error(err),
		)
	}
}
