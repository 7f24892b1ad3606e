package contracts

import (
	"context"

	"zahara-service/internal/app/models"
)

// AuditTrailRepository is append-only: entries are recorded once and
// never mutated afterwards.
type AuditTrailRepository interface {
	Record(ctx context.Context, entry *models.AuditTrail) (*models.AuditTrail, error)
	FindByAppointmentID(ctx context.Context, appointmentID string) ([]models.AuditTrail, error)
}
