package routers

import (
	"zahara-service/internal/app/delivery/http/controllers"
	"zahara-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachConsultationRoutes(router chi.Router, middlewares *middlewares.Middlewares, consultationController *controllers.ConsultationController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authentication)
		r.Post("/book", consultationController.BookConsultation)
		r.Post("/{consultationID}/payment", consultationController.ProcessPayment)
		r.Get("/{consultationID}/payment-methods", consultationController.GetPaymentMethods)
		r.Get("/{consultationID}", consultationController.GetConsultation)
	})
}
