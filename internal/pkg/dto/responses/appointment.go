package responses

import "time"

type AppointmentResponse struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	ProviderID    string    `json:"provider_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Reason        string    `json:"reason,omitempty"`
}
