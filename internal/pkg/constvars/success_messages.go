package constvars

const (
	ResponseSuccess = "success"
	ResponseUnknown = "unknown"

	ConsultationBookedSuccessMessage = "Consultation booked, awaiting payment"
	PaymentSuccessMessage            = "Payment successful. Consultation confirmed."
	PaymentFailedMessagePrefix       = "Payment failed: "
	PaymentMethodsRetrievedMessage   = "Supported payment methods retrieved"
	AppointmentTransitionedMessage   = "Appointment updated"
	AuditTrailRetrievedMessage       = "Audit trail retrieved"
	WebhookProcessedMessage          = "Webhook processed"
)
