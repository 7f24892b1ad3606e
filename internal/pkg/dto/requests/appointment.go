package requests

import "time"

type CreateAppointmentRequest struct {
	ProviderID  string    `json:"provider_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type TransitionRequest struct {
	Details string `json:"details,omitempty" validate:"max=2000"`
}

// RequestMeta carries request metadata captured at the transport layer
// into audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
