package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   AppointmentStatus
		to     AppointmentStatus
		allowed bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, allowed: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, allowed: true},
		{name: "pending to completed", from: StatusPending, to: StatusCompleted, allowed: false},
		{name: "confirmed to completed", from: StatusConfirmed, to: StatusCompleted, allowed: true},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, allowed: true},
		{name: "confirmed to pending", from: StatusConfirmed, to: StatusPending, allowed: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusCancelled, allowed: false},
		{name: "completed to confirmed", from: StatusCompleted, to: StatusConfirmed, allowed: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusPending, allowed: false},
		{name: "cancelled to confirmed", from: StatusCancelled, to: StatusConfirmed, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.allowed, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_OccupiesSlot(t *testing.T) {
	for _, st := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted} {
		a := &Appointment{Status: st}
		assert.True(t, a.OccupiesSlot(), "status=%s", st)
	}
	a := &Appointment{Status: StatusCancelled}
	assert.False(t, a.OccupiesSlot())
}

func TestAppointment_RevenueContribution(t *testing.T) {
	completed := &Appointment{Status: StatusCompleted, TotalValue: 120, DepositValue: 30}
	assert.Equal(t, 120.0, completed.RevenueContribution())

	confirmedPartial := &Appointment{Status: StatusConfirmed, PaymentStatus: PaymentPartial, TotalValue: 120, DepositValue: 30}
	assert.Equal(t, 30.0, confirmedPartial.RevenueContribution())

	confirmedUnpaid := &Appointment{Status: StatusConfirmed, PaymentStatus: PaymentPending, TotalValue: 120, DepositValue: 30}
	assert.Equal(t, 0.0, confirmedUnpaid.RevenueContribution())

	pending := &Appointment{Status: StatusPending, TotalValue: 120}
	assert.Equal(t, 0.0, pending.RevenueContribution())

	cancelled := &Appointment{Status: StatusCancelled, TotalValue: 120}
	assert.Equal(t, 0.0, cancelled.RevenueContribution())
}
