package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"zahara-service/internal/app/contracts"
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/dto/requests"
	"zahara-service/internal/pkg/exceptions"
	"zahara-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConsultationController struct {
	Log                 *zap.Logger
	ConsultationUsecase contracts.ConsultationUsecase
}

var (
	consultationControllerInstance *ConsultationController
	onceConsultationController     sync.Once
)

func NewConsultationController(logger *zap.Logger, consultationUsecase contracts.ConsultationUsecase) *ConsultationController {
	onceConsultationController.Do(func() {
		consultationControllerInstance = &ConsultationController{
			Log:                 logger,
			ConsultationUsecase: consultationUsecase,
		}
	})
	return consultationControllerInstance
}

func (ctrl *ConsultationController) BookConsultation(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	requesterEmail, _ := r.Context().Value(constvars.CONTEXT_REQUESTER_EMAIL_KEY).(string)

	request := new(requests.BookConsultationRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ConsultationUsecase.BookConsultation(ctx, requesterEmail, request)
	if err != nil {
		ctrl.Log.Error("Failed to book consultation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderIDKey, request.ProviderID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ConsultationBookedSuccessMessage, response)
}

func (ctrl *ConsultationController) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	requesterEmail, _ := r.Context().Value(constvars.CONTEXT_REQUESTER_EMAIL_KEY).(string)
	consultationID := chi.URLParam(r, "consultationID")

	request := new(requests.ProcessPaymentRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
	defer cancel()

	response, err := ctrl.ConsultationUsecase.ProcessPayment(ctx, requesterEmail, consultationID, request)
	if err != nil {
		ctrl.Log.Error("Failed to process payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingConsultationIDKey, consultationID),
			zap.String(constvars.LoggingPaymentMethodKey, request.PaymentMethod),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// A declined charge is still a processed request: 200 with the
	// failure message in the payload, not an HTTP error.
	utils.BuildSuccessResponse(w, constvars.StatusOK, response.Message, response)
}

func (ctrl *ConsultationController) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	consultationID := chi.URLParam(r, "consultationID")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	methods, err := ctrl.ConsultationUsecase.GetPaymentMethods(ctx, consultationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentMethodsRetrievedMessage, methods)
}

func (ctrl *ConsultationController) GetConsultation(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	requesterEmail, _ := r.Context().Value(constvars.CONTEXT_REQUESTER_EMAIL_KEY).(string)
	consultationID := chi.URLParam(r, "consultationID")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ConsultationUsecase.GetConsultation(ctx, requesterEmail, consultationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, response)
}
