package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Deal struct {
	ID          primitive.ObjectID `bson:"_id"`
	Deal_id     string             `json:"deal_id"`
	Title       *string            `json:"title" validate:"required,min=2,max=100"`
	Description *string            `json:"description"`
	Discount    *string            `json:"discount" validate:"required"`
	Created_by  string             `json:"created_by"`
	Created_at  time.Time          `json:"created_at"`
	Expires_at  string             `json:"expires_at"`
	Active      bool               `json:"active"`
}
