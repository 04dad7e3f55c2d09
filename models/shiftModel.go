package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shift time-clock statuses.
const (
	ShiftScheduled = "scheduled"
	ShiftCheckedIn = "checked_in"
	ShiftOnBreak   = "on_break"
	ShiftCompleted = "completed"
)

type Shift struct {
	ID              primitive.ObjectID `bson:"_id"`
	Shift_id        string             `json:"shift_id"`
	Staff_email     *string            `json:"staff_email" validate:"required,email"`
	Date            *string            `json:"date" validate:"required"`
	Scheduled_start *string            `json:"scheduled_start" validate:"required"`
	Scheduled_end   *string            `json:"scheduled_end" validate:"required"`
	Check_in        *time.Time         `json:"check_in" bson:"check_in"`
	Check_out       *time.Time         `json:"check_out" bson:"check_out"`
	Break_start     *time.Time         `json:"break_start" bson:"break_start"`
	Break_end       *time.Time         `json:"break_end" bson:"break_end"`
	Total_hours     float64            `json:"total_hours"`
	Status          string             `json:"status"`
	Notes           string             `json:"notes"`
	Early_checkout  bool               `json:"early_checkout"`
	Created_at      time.Time          `json:"created_at"`
	Updated_at      time.Time          `json:"updated_at"`
}
