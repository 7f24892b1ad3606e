package payments

import (
	"context"
	"time"

	"zahara-service/internal/app/config"
	"zahara-service/internal/app/contracts"
	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/dto/requests"
	"zahara-service/internal/pkg/exceptions"
	"zahara-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type paymentUsecase struct {
	PaymentRepository      contracts.PaymentRepository
	ConsultationRepository contracts.ConsultationRepository
	InternalConfig         *config.InternalConfig
	Logger                 *zap.Logger
}

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	consultationRepository contracts.ConsultationRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		PaymentRepository:      paymentRepository,
		ConsultationRepository: consultationRepository,
		InternalConfig:         internalConfig,
		Logger:                 logger,
	}
}

// HandleGatewayWebhook verifies the HMAC signature over the raw body
// before anything in it is trusted, then settles the referenced payment.
// Replayed confirmations for a payment that already left INITIATED are
// acknowledged without touching anything.
func (uc *paymentUsecase) HandleGatewayWebhook(ctx context.Context, signature string, body []byte) (*requests.GatewayWebhookPayload, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if !utils.VerifyWebhookSignature(uc.InternalConfig.Payment.WebhookSigningSecret, body, signature) {
		uc.Logger.Warn("webhook signature rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidWebhookSignature(nil)
	}

	var payload requests.GatewayWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	payment, err := uc.PaymentRepository.FindByGatewayRef(ctx, payload.Data.Reference)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotExist(nil)
	}

	if !payment.WebhookVerified {
		payment.WebhookVerified = true
		payment.UpdatedAt = time.Now().UTC()
		if _, err := uc.PaymentRepository.Update(ctx, payment); err != nil {
			return nil, err
		}
	}

	switch payload.Event {
	case requests.GatewayWebhookEventPaymentSuccess:
		err = uc.settleSuccess(ctx, payment)
	case requests.GatewayWebhookEventPaymentFailed:
		err = uc.settleFailure(ctx, payment, payload.Data.Status)
	default:
		uc.Logger.Info("ignoring webhook event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("event", payload.Event),
		)
	}
	if err != nil {
		return nil, err
	}

	return &payload, nil
}

// settleSuccess confirms an in-flight payment the synchronous gateway
// call could not resolve, typically a bank transfer that cleared later.
func (uc *paymentUsecase) settleSuccess(ctx context.Context, payment *models.Payment) error {
	if payment.Status != models.PaymentRecordStatusInitiated {
		return nil
	}

	now := time.Now().UTC()
	payment.Status = models.PaymentRecordStatusSucceeded
	payment.UpdatedAt = now
	if _, err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		return err
	}

	consultation, err := uc.ConsultationRepository.FindByID(ctx, payment.ConsultationID)
	if err != nil {
		return err
	}
	if consultation == nil {
		return exceptions.ErrConsultationNotExist(nil)
	}

	// An async settlement never got a gateway transaction id, so the
	// outbound reference is what the client sees as the transaction.
	transactionID := payment.TransactionID
	if transactionID == "" {
		transactionID = payment.GatewayRef
	}

	consultation.Status = models.ConsultationStatusScheduled
	consultation.PaymentStatus = models.PaymentStatusCompleted
	consultation.PaymentMethod = payment.Method
	consultation.PaymentTransactionID = transactionID
	consultation.PaidAt = &now
	consultation.UpdatedAt = now
	_, err = uc.ConsultationRepository.Update(ctx, consultation)
	return err
}

func (uc *paymentUsecase) settleFailure(ctx context.Context, payment *models.Payment, reason string) error {
	if payment.Status != models.PaymentRecordStatusInitiated {
		return nil
	}

	now := time.Now().UTC()
	payment.Status = models.PaymentRecordStatusFailed
	payment.FailureReason = reason
	payment.UpdatedAt = now
	if _, err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		return err
	}

	consultation, err := uc.ConsultationRepository.FindByID(ctx, payment.ConsultationID)
	if err != nil {
		return err
	}
	if consultation == nil {
		return exceptions.ErrConsultationNotExist(nil)
	}

	consultation.PaymentStatus = models.PaymentStatusFailed
	consultation.UpdatedAt = now
	_, err = uc.ConsultationRepository.Update(ctx, consultation)
	return err
}
