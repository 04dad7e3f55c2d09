package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/t4thick/cs120-food-truck/models"
)

// TimeSlots is the fixed set of bookable hourly slots, in display order.
// Availability listings always follow this order.
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// WorkingDays lists the weekdays the truck operates. Monday is the fixed
// day off.
var WorkingDays = map[time.Weekday]bool{
	time.Tuesday:   true,
	time.Wednesday: true,
	time.Thursday:  true,
	time.Friday:    true,
	time.Saturday:  true,
	time.Sunday:    true,
}

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate   = errors.New("date must be in format YYYY-MM-DD (e.g. 2025-12-30)")
	ErrNonWorkingDay = errors.New("the truck does not operate on that day")
	ErrInvalidSlot   = errors.New("time slot is not one of the bookable slots")
	ErrStaffNotFound = errors.New("staff member not found")
	ErrSlotConflict  = errors.New("staff member already has a booking at that date and time")
)

// ParseWorkDate parses a calendar date in the booking format.
func ParseWorkDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// AvailableSlots returns the open slots for one staff member on one date, in
// TimeSlots order. Unparsable dates and non-working days return an empty
// list.
func AvailableSlots(rows []models.Schedule, staffEmail string, date string) []string {
	d, err := ParseWorkDate(date)
	if err != nil || !WorkingDays[d.Weekday()] {
		return []string{}
	}

	taken := map[string]bool{}
	for _, row := range rows {
		if row.Staff_email == nil || row.Date == nil || row.Time_slot == nil {
			continue
		}
		if strings.EqualFold(*row.Staff_email, staffEmail) && *row.Date == date {
			taken[*row.Time_slot] = true
		}
	}

	available := []string{}
	for _, slot := range TimeSlots {
		if !taken[slot] {
			available = append(available, slot)
		}
	}
	return available
}

// ValidateBooking checks a booking request against the loaded schedule rows.
// Staff existence is checked by the caller against the user collection.
func ValidateBooking(rows []models.Schedule, date string, timeSlot string, staffEmail string) error {
	d, err := ParseWorkDate(date)
	if err != nil {
		return ErrInvalidDate
	}
	if !WorkingDays[d.Weekday()] {
		return ErrNonWorkingDay
	}

	validSlot := false
	for _, slot := range TimeSlots {
		if slot == timeSlot {
			validSlot = true
			break
		}
	}
	if !validSlot {
		return ErrInvalidSlot
	}

	for _, row := range rows {
		if row.Staff_email == nil || row.Date == nil || row.Time_slot == nil {
			continue
		}
		if strings.EqualFold(*row.Staff_email, staffEmail) && *row.Date == date && *row.Time_slot == timeSlot {
			return ErrSlotConflict
		}
	}
	return nil
}

var (
	staffDateMu    sync.Mutex
	staffDateLocks = map[string]*sync.Mutex{}
)

// LockStaffDate serialises check-then-act sections (booking a slot, claiming
// a shift) per staff member and date, so two concurrent requests cannot both
// pass the availability guard. Returns the unlock func.
func LockStaffDate(staffEmail string, date string) func() {
	key := strings.ToLower(staffEmail) + "|" + date

	staffDateMu.Lock()
	mu, ok := staffDateLocks[key]
	if !ok {
		mu = &sync.Mutex{}
		staffDateLocks[key] = mu
	}
	staffDateMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
