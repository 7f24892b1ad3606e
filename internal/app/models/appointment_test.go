package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newPendingAppointment() *Appointment {
	return &Appointment{
		ID:            "apt-1",
		ClientID:      "user-1",
		ProviderID:    "provider-1",
		Status:        AppointmentStatusPending,
		PaymentStatus: AppointmentPaymentStatusUnpaid,
	}
}

func TestAppointmentApprove(t *testing.T) {
	t.Run("from pending", func(t *testing.T) {
		apt := newPendingAppointment()

		err := apt.Approve()

		assert.NoError(t, err)
		assert.Equal(t, AppointmentStatusConfirmed, apt.Status)
	})

	t.Run("from any non-pending status is rejected and leaves state unchanged", func(t *testing.T) {
		for _, status := range []AppointmentStatus{
			AppointmentStatusConfirmed,
			AppointmentStatusDeclined,
			AppointmentStatusCancelled,
			AppointmentStatusCompleted,
			AppointmentStatusNoShow,
		} {
			apt := newPendingAppointment()
			apt.Status = status

			err := apt.Approve()

			var transitionErr *ErrTransitionNotAllowed
			assert.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, status, apt.Status, "status must not change on guard failure")
		}
	})
}

func TestAppointmentDecline(t *testing.T) {
	apt := newPendingAppointment()

	err := apt.Decline("provider unavailable")

	assert.NoError(t, err)
	assert.Equal(t, AppointmentStatusDeclined, apt.Status)
	assert.Equal(t, "provider unavailable", apt.Reason)

	err = apt.Decline("again")
	assert.Error(t, err)
	assert.Equal(t, "provider unavailable", apt.Reason)
}

func TestAppointmentCancel(t *testing.T) {
	t.Run("pending can be cancelled", func(t *testing.T) {
		apt := newPendingAppointment()
		assert.NoError(t, apt.Cancel("client request"))
		assert.Equal(t, AppointmentStatusCancelled, apt.Status)
	})

	t.Run("confirmed can be cancelled", func(t *testing.T) {
		apt := newPendingAppointment()
		apt.Status = AppointmentStatusConfirmed
		assert.NoError(t, apt.Cancel("client request"))
		assert.Equal(t, AppointmentStatusCancelled, apt.Status)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		apt := newPendingAppointment()
		apt.Status = AppointmentStatusCompleted
		assert.Error(t, apt.Cancel("too late"))
		assert.Equal(t, AppointmentStatusCompleted, apt.Status)
	})
}

func TestAppointmentCompleteAndNoShow(t *testing.T) {
	apt := newPendingAppointment()
	assert.Error(t, apt.Complete(), "cannot complete an unconfirmed appointment")
	assert.Error(t, apt.MarkNoShow(), "cannot no-show an unconfirmed appointment")

	assert.NoError(t, apt.Approve())
	assert.NoError(t, apt.Complete())
	assert.Equal(t, AppointmentStatusCompleted, apt.Status)
}

func TestAppointmentPaymentMachineIsIndependent(t *testing.T) {
	apt := newPendingAppointment()

	assert.Error(t, apt.Refund(), "cannot refund an unpaid appointment")

	assert.NoError(t, apt.MarkAsPaid())
	assert.Equal(t, AppointmentPaymentStatusPaid, apt.PaymentStatus)
	assert.Equal(t, AppointmentStatusPending, apt.Status, "booking status untouched by payment transitions")

	assert.Error(t, apt.MarkAsPaid(), "double mark-as-paid rejected")

	assert.NoError(t, apt.Refund())
	assert.Equal(t, AppointmentPaymentStatusRefunded, apt.PaymentStatus)

	assert.Error(t, apt.Refund(), "double refund rejected")
}
