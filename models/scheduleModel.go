package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule is one booked slot for one staff member. Rows are append-only;
// the (staff_email, date, time_slot) tuple must stay unique.
type Schedule struct {
	ID          primitive.ObjectID `bson:"_id"`
	Manager     *string            `json:"manager" validate:"required"`
	Date        *string            `json:"date" validate:"required"`
	Time_slot   *string            `json:"time_slot" validate:"required"`
	Staff_email *string            `json:"staff_email" validate:"required,email"`
	Staff_name  string             `json:"staff_name"`
	Work_time   *string            `json:"work_time" validate:"required"`
	Created_at  time.Time          `json:"created_at"`
	Schedule_id string             `json:"schedule_id"`
}
