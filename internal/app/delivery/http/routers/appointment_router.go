package routers

import (
	"zahara-service/internal/app/delivery/http/controllers"
	"zahara-service/internal/app/delivery/http/middlewares"
	"zahara-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authentication)
		r.Post("/", appointmentController.CreateAppointment)
		r.Post("/{appointmentID}/approve", appointmentController.Transition(models.AuditActionApproved))
		r.Post("/{appointmentID}/decline", appointmentController.Transition(models.AuditActionDeclined))
		r.Post("/{appointmentID}/cancel", appointmentController.Transition(models.AuditActionCancelled))
		r.Post("/{appointmentID}/complete", appointmentController.Transition(models.AuditActionCompleted))
		r.Post("/{appointmentID}/no-show", appointmentController.Transition(models.AuditActionNoShow))
		r.Post("/{appointmentID}/mark-paid", appointmentController.Transition(models.AuditActionMarkedPaid))
		r.Post("/{appointmentID}/refund", appointmentController.Transition(models.AuditActionRefunded))
		r.Get("/{appointmentID}/audit-trail", appointmentController.GetAuditTrail)
	})
}
