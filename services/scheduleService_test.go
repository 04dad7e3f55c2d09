package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/t4thick/cs120-food-truck/models"
)

// 2025-12-29 is a Monday, 2025-12-30 is a Tuesday.
const (
	mondayDate  = "2025-12-29"
	tuesdayDate = "2025-12-30"
)

func scheduleRow(email, date, slot string) models.Schedule {
	return models.Schedule{
		Manager:     strPtr("boss@truck.com"),
		Date:        &date,
		Time_slot:   &slot,
		Staff_email: &email,
		Staff_name:  "Test Staff",
		Work_time:   strPtr("counter"),
	}
}

func TestAvailableSlots(t *testing.T) {
	rows := []models.Schedule{
		scheduleRow("a@x.com", tuesdayDate, "11:00"),
		scheduleRow("a@x.com", tuesdayDate, "09:00"),
		scheduleRow("b@x.com", tuesdayDate, "10:00"),
	}

	got := AvailableSlots(rows, "a@x.com", tuesdayDate)
	assert.Equal(t, []string{"10:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}, got)

	// other staff members do not shadow each other's slots
	assert.Contains(t, AvailableSlots(rows, "b@x.com", tuesdayDate), "09:00")
}

func TestAvailableSlots_OrderFollowsTimeSlots(t *testing.T) {
	// bookings arrive out of slot order; listing order must not care
	rows := []models.Schedule{
		scheduleRow("a@x.com", tuesdayDate, "15:00"),
		scheduleRow("a@x.com", tuesdayDate, "09:00"),
	}
	got := AvailableSlots(rows, "a@x.com", tuesdayDate)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00", "14:00", "16:00", "17:00"}, got)
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	rows := []models.Schedule{scheduleRow("a@x.com", tuesdayDate, "09:00")}
	first := AvailableSlots(rows, "a@x.com", tuesdayDate)
	second := AvailableSlots(rows, "a@x.com", tuesdayDate)
	assert.Equal(t, first, second)
}

func TestAvailableSlots_RejectedDates(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"monday is the day off", mondayDate},
		{"garbage date", "not-a-date"},
		{"wrong format", "29/12/2025"},
		{"empty date", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, AvailableSlots(nil, "a@x.com", tt.date))
		})
	}
}

func TestAvailableSlots_CaseInsensitiveEmail(t *testing.T) {
	rows := []models.Schedule{scheduleRow("A@X.com", tuesdayDate, "09:00")}
	got := AvailableSlots(rows, "a@x.com", tuesdayDate)
	assert.NotContains(t, got, "09:00")
}

func TestValidateBooking(t *testing.T) {
	taken := []models.Schedule{scheduleRow("a@x.com", tuesdayDate, "09:00")}

	tests := []struct {
		name    string
		rows    []models.Schedule
		date    string
		slot    string
		email   string
		wantErr error
	}{
		{"valid booking", nil, tuesdayDate, "09:00", "a@x.com", nil},
		{"invalid date", nil, "2025-13-40", "09:00", "a@x.com", ErrInvalidDate},
		{"monday booking", nil, mondayDate, "09:00", "a@x.com", ErrNonWorkingDay},
		{"monday booking any slot", nil, mondayDate, "17:00", "a@x.com", ErrNonWorkingDay},
		{"slot not in the fixed list", nil, tuesdayDate, "08:30", "a@x.com", ErrInvalidSlot},
		{"slot already taken", taken, tuesdayDate, "09:00", "a@x.com", ErrSlotConflict},
		{"conflict is case-insensitive on email", taken, tuesdayDate, "09:00", "A@X.COM", ErrSlotConflict},
		{"same slot free for other staff", taken, tuesdayDate, "09:00", "b@x.com", nil},
		{"same staff free at other slot", taken, tuesdayDate, "10:00", "a@x.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBooking(tt.rows, tt.date, tt.slot, tt.email)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBooking_DoubleBookKeepsFirstRow(t *testing.T) {
	rows := []models.Schedule{scheduleRow("a@x.com", tuesdayDate, "09:00")}

	err := ValidateBooking(rows, tuesdayDate, "09:00", "a@x.com")
	require.ErrorIs(t, err, ErrSlotConflict)

	// the existing row is untouched by a failed validation
	require.Len(t, rows, 1)
	assert.Equal(t, "09:00", *rows[0].Time_slot)
}

func TestBookingErrorsHaveDistinctMessages(t *testing.T) {
	msgs := map[string]bool{}
	for _, err := range []error{ErrInvalidDate, ErrNonWorkingDay, ErrInvalidSlot, ErrStaffNotFound, ErrSlotConflict} {
		msgs[err.Error()] = true
	}
	assert.Len(t, msgs, 5)
}

func TestLockStaffDate(t *testing.T) {
	unlock := LockStaffDate("a@x.com", tuesdayDate)

	acquired := make(chan struct{})
	go func() {
		// same key, must wait for the first holder
		u := LockStaffDate("A@X.COM", tuesdayDate)
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	<-acquired

	// different key never blocks
	u := LockStaffDate("b@x.com", tuesdayDate)
	u()
}
