package routers

import (
	"zahara-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

// The webhook endpoint authenticates by HMAC signature, not by bearer
// token, so it sits outside the Authentication group.
func attachWebhookRoutes(router chi.Router, webhookController *controllers.WebhookController) {
	router.Post("/webhook", webhookController.GatewayWebhook)
}
