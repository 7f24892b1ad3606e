package models

import "time"

type AuditAction string

const (
	AuditActionCreated    AuditAction = "CREATED"
	AuditActionApproved   AuditAction = "APPROVED"
	AuditActionDeclined   AuditAction = "DECLINED"
	AuditActionCancelled  AuditAction = "CANCELLED"
	AuditActionCompleted  AuditAction = "COMPLETED"
	AuditActionNoShow     AuditAction = "NO_SHOW"
	AuditActionMarkedPaid AuditAction = "MARKED_PAID"
	AuditActionRefunded   AuditAction = "REFUNDED"
)

// AuditTrail is one immutable record per state-changing action on an
// appointment. Entries are append-only and never updated or deleted.
type AuditTrail struct {
	ID             string      `json:"id" bson:"_id,omitempty"`
	AppointmentID  string      `json:"appointment_id" bson:"appointmentId"`
	ActorID        string      `json:"actor_id" bson:"actorId"`
	Action         AuditAction `json:"action" bson:"action"`
	Details        string      `json:"details" bson:"details"`
	PreviousStatus string      `json:"previous_status,omitempty" bson:"previousStatus,omitempty"`
	NewStatus      string      `json:"new_status,omitempty" bson:"newStatus,omitempty"`
	IPAddress      string      `json:"ip_address,omitempty" bson:"ipAddress,omitempty"`
	UserAgent      string      `json:"user_agent,omitempty" bson:"userAgent,omitempty"`
	CreatedAt      time.Time   `json:"created_at" bson:"createdAt"`
}
