package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/t4thick/cs120-food-truck/models"
)

func scheduledShift(email string) models.Shift {
	return models.Shift{
		Shift_id:        "shift-1",
		Staff_email:     &email,
		Date:            strPtr(tuesdayDate),
		Scheduled_start: strPtr("09:00"),
		Scheduled_end:   strPtr("17:00"),
		Status:          models.ShiftScheduled,
	}
}

func at(hour, min, sec int) time.Time {
	return time.Date(2025, time.December, 30, hour, min, sec, 0, time.UTC)
}

func TestShiftLifecycle_FullDayWithBreak(t *testing.T) {
	shift := scheduledShift("a@x.com")

	require.NoError(t, ApplyShiftAction(&shift, ActionCheckIn, at(9, 0, 0)))
	assert.Equal(t, models.ShiftCheckedIn, shift.Status)

	require.NoError(t, ApplyShiftAction(&shift, ActionStartBreak, at(12, 0, 0)))
	assert.Equal(t, models.ShiftOnBreak, shift.Status)

	require.NoError(t, ApplyShiftAction(&shift, ActionEndBreak, at(12, 30, 0)))
	assert.Equal(t, models.ShiftCheckedIn, shift.Status)

	require.NoError(t, ApplyShiftAction(&shift, ActionCheckOut, at(17, 0, 0)))
	assert.Equal(t, models.ShiftCompleted, shift.Status)
	assert.False(t, shift.Early_checkout)

	// (17:00 - 09:00) - (12:30 - 12:00) = 7.5
	assert.InDelta(t, 7.5, shift.Total_hours, 0.001)
}

func TestShiftLifecycle_NoBreak(t *testing.T) {
	shift := scheduledShift("a@x.com")

	require.NoError(t, ApplyShiftAction(&shift, ActionCheckIn, at(10, 0, 0)))
	require.NoError(t, ApplyShiftAction(&shift, ActionCheckOut, at(14, 15, 0)))

	assert.Equal(t, models.ShiftCompleted, shift.Status)
	assert.InDelta(t, 4.25, shift.Total_hours, 0.001)
}

func TestShiftLifecycle_EarlyCheckoutFromBreak(t *testing.T) {
	shift := scheduledShift("a@x.com")

	require.NoError(t, ApplyShiftAction(&shift, ActionCheckIn, at(9, 0, 0)))
	require.NoError(t, ApplyShiftAction(&shift, ActionStartBreak, at(11, 0, 0)))
	require.NoError(t, ApplyShiftAction(&shift, ActionCheckOutEarly, at(11, 30, 0)))

	assert.Equal(t, models.ShiftCompleted, shift.Status)
	assert.True(t, shift.Early_checkout)
	// break never ended, so no break is subtracted
	assert.InDelta(t, 2.5, shift.Total_hours, 0.001)
}

func TestShiftGuards(t *testing.T) {
	tests := []struct {
		name   string
		status string
		action string
	}{
		{"checkout while still scheduled", models.ShiftScheduled, ActionCheckOut},
		{"early checkout while still scheduled", models.ShiftScheduled, ActionCheckOutEarly},
		{"break before check-in", models.ShiftScheduled, ActionStartBreak},
		{"end break while not on break", models.ShiftCheckedIn, ActionEndBreak},
		{"double check-in", models.ShiftCheckedIn, ActionCheckIn},
		{"check-in on completed shift", models.ShiftCompleted, ActionCheckIn},
		{"checkout on completed shift", models.ShiftCompleted, ActionCheckOut},
		{"break on completed shift", models.ShiftCompleted, ActionStartBreak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := scheduledShift("a@x.com")
			shift.Status = tt.status
			err := ApplyShiftAction(&shift, tt.action, at(9, 0, 0))
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.status, shift.Status, "guard failure must not change state")
		})
	}
}

func TestApplyShiftAction_UnknownAction(t *testing.T) {
	shift := scheduledShift("a@x.com")
	err := ApplyShiftAction(&shift, "teleport", at(9, 0, 0))
	assert.ErrorIs(t, err, ErrUnknownShiftAction)
}

func TestComputeTotalHours_SoftFailure(t *testing.T) {
	checkIn := at(9, 0, 0)

	tests := []struct {
		name  string
		shift models.Shift
	}{
		{"no timestamps at all", models.Shift{}},
		{"check-in only", models.Shift{Check_in: &checkIn}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ComputeTotalHours(tt.shift)
			assert.False(t, ok)
		})
	}
}

func TestComputeTotalHours_Rounding(t *testing.T) {
	checkIn := at(9, 0, 0)
	checkOut := at(9, 50, 0) // 50 minutes = 0.8333... hours

	hours, ok := ComputeTotalHours(models.Shift{Check_in: &checkIn, Check_out: &checkOut})
	require.True(t, ok)
	assert.Equal(t, 0.83, hours)
}

func TestOwnsShift(t *testing.T) {
	shift := scheduledShift("Staff@Truck.com")

	assert.True(t, OwnsShift(shift, "staff@truck.com"))
	assert.True(t, OwnsShift(shift, "STAFF@TRUCK.COM"))
	assert.False(t, OwnsShift(shift, "other@truck.com"))

	shift.Staff_email = nil
	assert.False(t, OwnsShift(shift, "staff@truck.com"))
}

func TestHasShiftOnDate(t *testing.T) {
	shifts := []models.Shift{scheduledShift("a@x.com")}

	assert.True(t, HasShiftOnDate(shifts, "a@x.com", tuesdayDate))
	assert.True(t, HasShiftOnDate(shifts, "A@X.COM", tuesdayDate))
	assert.False(t, HasShiftOnDate(shifts, "a@x.com", "2025-12-31"))
	assert.False(t, HasShiftOnDate(shifts, "b@x.com", tuesdayDate))
}
