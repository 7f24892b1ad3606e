package controllers

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"zahara-service/internal/app/contracts"
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/exceptions"
	"zahara-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type WebhookController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

var (
	webhookControllerInstance *WebhookController
	onceWebhookController     sync.Once
)

func NewWebhookController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *WebhookController {
	onceWebhookController.Do(func() {
		webhookControllerInstance = &WebhookController{
			Log:            logger,
			PaymentUsecase: paymentUsecase,
		}
	})
	return webhookControllerInstance
}

// GatewayWebhook receives asynchronous settlement confirmations. The
// raw body is passed through untouched so the HMAC covers exactly the
// bytes the gateway signed.
func (ctrl *WebhookController) GatewayWebhook(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	signature := r.Header.Get(constvars.HeaderWebhookSignature)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payload, err := ctrl.PaymentUsecase.HandleGatewayWebhook(ctx, signature, body)
	if err != nil {
		ctrl.Log.Error("Failed to process gateway webhook",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WebhookProcessedMessage, payload.Event)
}
