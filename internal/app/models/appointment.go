package models

import (
	"fmt"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusDeclined  AppointmentStatus = "DECLINED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

type AppointmentPaymentStatus string

const (
	AppointmentPaymentStatusUnpaid   AppointmentPaymentStatus = "UNPAID"
	AppointmentPaymentStatusPaid     AppointmentPaymentStatus = "PAID"
	AppointmentPaymentStatusRefunded AppointmentPaymentStatus = "REFUNDED"
)

// ErrTransitionNotAllowed signals a guarded transition whose
// precondition on the current status does not hold. The appointment is
// left untouched; callers surface it as an invalid-state error instead
// of silently ignoring the call.
type ErrTransitionNotAllowed struct {
	Action  AuditAction
	Current string
}

func (e *ErrTransitionNotAllowed) Error() string {
	return fmt.Sprintf("cannot %s appointment in status %s", e.Action, e.Current)
}

// Appointment keeps booking status and payment status as two independent
// state machines. Every transition method checks its precondition and
// returns ErrTransitionNotAllowed when the current status does not
// permit the action; state is only mutated when the guard holds.
type Appointment struct {
	ID            string                   `json:"id" bson:"_id,omitempty"`
	ClientID      string                   `json:"client_id" bson:"clientId"`
	ClientEmail   string                   `json:"client_email" bson:"clientEmail"`
	ProviderID    string                   `json:"provider_id" bson:"providerId"`
	ScheduledAt   time.Time                `json:"scheduled_at" bson:"scheduledAt"`
	Status        AppointmentStatus        `json:"status" bson:"status"`
	PaymentStatus AppointmentPaymentStatus `json:"payment_status" bson:"paymentStatus"`
	Reason        string                   `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt     time.Time                `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time                `json:"updated_at" bson:"updatedAt"`
}

func (a *Appointment) Approve() error {
	if a.Status != AppointmentStatusPending {
		return &ErrTransitionNotAllowed{Action: AuditActionApproved, Current: string(a.Status)}
	}
	a.Status = AppointmentStatusConfirmed
	return nil
}

func (a *Appointment) Decline(reason string) error {
	if a.Status != AppointmentStatusPending {
		return &ErrTransitionNotAllowed{Action: AuditActionDeclined, Current: string(a.Status)}
	}
	a.Status = AppointmentStatusDeclined
	a.Reason = reason
	return nil
}

func (a *Appointment) Cancel(reason string) error {
	if a.Status != AppointmentStatusPending && a.Status != AppointmentStatusConfirmed {
		return &ErrTransitionNotAllowed{Action: AuditActionCancelled, Current: string(a.Status)}
	}
	a.Status = AppointmentStatusCancelled
	a.Reason = reason
	return nil
}

func (a *Appointment) Complete() error {
	if a.Status != AppointmentStatusConfirmed {
		return &ErrTransitionNotAllowed{Action: AuditActionCompleted, Current: string(a.Status)}
	}
	a.Status = AppointmentStatusCompleted
	return nil
}

func (a *Appointment) MarkNoShow() error {
	if a.Status != AppointmentStatusConfirmed {
		return &ErrTransitionNotAllowed{Action: AuditActionNoShow, Current: string(a.Status)}
	}
	a.Status = AppointmentStatusNoShow
	return nil
}

func (a *Appointment) MarkAsPaid() error {
	if a.PaymentStatus != AppointmentPaymentStatusUnpaid {
		return &ErrTransitionNotAllowed{Action: AuditActionMarkedPaid, Current: string(a.PaymentStatus)}
	}
	a.PaymentStatus = AppointmentPaymentStatusPaid
	return nil
}

func (a *Appointment) Refund() error {
	if a.PaymentStatus != AppointmentPaymentStatusPaid {
		return &ErrTransitionNotAllowed{Action: AuditActionRefunded, Current: string(a.PaymentStatus)}
	}
	a.PaymentStatus = AppointmentPaymentStatusRefunded
	return nil
}
