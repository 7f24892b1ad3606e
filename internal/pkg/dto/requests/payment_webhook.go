package requests

// GatewayWebhookPayload is the asynchronous confirmation pushed by the
// payment gateway after a transfer settles or fails. The raw body is
// HMAC-verified before this structure is trusted.
type GatewayWebhookPayload struct {
	Event string             `json:"event"`
	Data  GatewayWebhookData `json:"data"`
}

type GatewayWebhookData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

const (
	GatewayWebhookEventPaymentSuccess = "payment.success"
	GatewayWebhookEventPaymentFailed  = "payment.failed"
)
