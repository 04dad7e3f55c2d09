package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/t4thick/cs120-food-truck/models"
)

// Shift actions accepted by ApplyShiftAction. An early checkout is the same
// transition as a normal checkout, tagged on the record.
const (
	ActionCheckIn       = "check_in"
	ActionStartBreak    = "start_break"
	ActionEndBreak      = "end_break"
	ActionCheckOut      = "check_out"
	ActionCheckOutEarly = "check_out_early"
)

var (
	ErrNotShiftOwner      = errors.New("you can only manage your own shifts")
	ErrInvalidTransition  = errors.New("shift is not in a state that allows this action")
	ErrUnknownShiftAction = errors.New("unknown shift action")
	ErrDuplicateShift     = errors.New("staff member already has a shift for that date")
)

// OwnsShift reports whether the shift belongs to the given staff member.
// Emails compare case-insensitively.
func OwnsShift(shift models.Shift, staffEmail string) bool {
	if shift.Staff_email == nil {
		return false
	}
	return strings.EqualFold(*shift.Staff_email, staffEmail)
}

// ApplyShiftAction runs one time-clock transition against the shift,
// stamping the relevant timestamp with now. Ownership must be checked by the
// caller before calling this.
//
// scheduled -> checked_in -> on_break -> checked_in -> ... -> completed
// checked_in may also complete directly. completed is terminal.
func ApplyShiftAction(shift *models.Shift, action string, now time.Time) error {
	switch action {
	case ActionCheckIn:
		if shift.Status != models.ShiftScheduled {
			return ErrInvalidTransition
		}
		t := now
		shift.Check_in = &t
		shift.Status = models.ShiftCheckedIn

	case ActionStartBreak:
		if shift.Status != models.ShiftCheckedIn {
			return ErrInvalidTransition
		}
		t := now
		shift.Break_start = &t
		shift.Status = models.ShiftOnBreak

	case ActionEndBreak:
		if shift.Status != models.ShiftOnBreak {
			return ErrInvalidTransition
		}
		t := now
		shift.Break_end = &t
		shift.Status = models.ShiftCheckedIn

	case ActionCheckOut, ActionCheckOutEarly:
		if shift.Status != models.ShiftCheckedIn && shift.Status != models.ShiftOnBreak {
			return ErrInvalidTransition
		}
		t := now
		shift.Check_out = &t
		shift.Status = models.ShiftCompleted
		shift.Early_checkout = action == ActionCheckOutEarly
		if hours, ok := ComputeTotalHours(*shift); ok {
			shift.Total_hours = hours
		}

	default:
		return ErrUnknownShiftAction
	}
	return nil
}

// ComputeTotalHours derives worked hours as (check-out - check-in) minus the
// break, when both break timestamps are present, rounded to 2 decimal
// places. Missing check-in or check-out skips the computation (second return
// false) instead of failing: shift records stay writable with partial data.
func ComputeTotalHours(shift models.Shift) (float64, bool) {
	if shift.Check_in == nil || shift.Check_out == nil {
		return 0, false
	}

	worked := decimal.NewFromFloat(shift.Check_out.Sub(*shift.Check_in).Hours())
	if shift.Break_start != nil && shift.Break_end != nil {
		onBreak := decimal.NewFromFloat(shift.Break_end.Sub(*shift.Break_start).Hours())
		worked = worked.Sub(onBreak)
	}

	hours, _ := worked.Round(2).Float64()
	return hours, true
}

// HasShiftOnDate reports whether the staff member already has a shift on the
// given calendar date. At most one shift per staff member per date.
func HasShiftOnDate(shifts []models.Shift, staffEmail string, date string) bool {
	for _, shift := range shifts {
		if shift.Staff_email == nil || shift.Date == nil {
			continue
		}
		if strings.EqualFold(*shift.Staff_email, staffEmail) && *shift.Date == date {
			return true
		}
	}
	return false
}
