package controllers

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"zahara-service/internal/app/contracts"
	"zahara-service/internal/app/models"
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/dto/requests"
	"zahara-service/internal/pkg/exceptions"
	"zahara-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	onceAppointmentController.Do(func() {
		appointmentControllerInstance = &AppointmentController{
			Log:                logger,
			AppointmentUsecase: appointmentUsecase,
		}
	})
	return appointmentControllerInstance
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	requesterEmail, _ := r.Context().Value(constvars.CONTEXT_REQUESTER_EMAIL_KEY).(string)

	request := new(requests.CreateAppointmentRequest)
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

	response, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, requesterEmail, request, requestMeta(r))
	if err != nil {
		ctrl.Log.Error("Failed to create appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderIDKey, request.ProviderID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ResponseSuccess, response)
}

// Transition serves every action route; the action itself comes from the
// route registration, never from the request body.
func (ctrl *AppointmentController) Transition(action models.AuditAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		if !ok || requestID == "" {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
			return
		}
		requesterEmail, _ := r.Context().Value(constvars.CONTEXT_REQUESTER_EMAIL_KEY).(string)
		appointmentID := chi.URLParam(r, "appointmentID")

		// Transition bodies are optional; an empty body means no details.
		request := new(requests.TransitionRequest)
		if err := json.NewDecoder(r.Body).Decode(request); err != nil && err != io.EOF {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
		if err := utils.ValidateStruct(request); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		response, err := ctrl.AppointmentUsecase.Transition(ctx, requesterEmail, appointmentID, action, request, requestMeta(r))
		if err != nil {
			ctrl.Log.Error("Failed to transition appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
				zap.String(constvars.LoggingAuditActionKey, string(action)),
				zap.Error(err),
			)
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}

		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentTransitionedMessage, response)
	}
}

func (ctrl *AppointmentController) GetAuditTrail(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := ctrl.AppointmentUsecase.GetAuditTrail(ctx, appointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AuditTrailRetrievedMessage, entries)
}

func requestMeta(r *http.Request) *requests.RequestMeta {
	return &requests.RequestMeta{
		IPAddress: utils.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}
