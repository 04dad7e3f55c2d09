package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Menu struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        *string            `json:"name" validate:"required,min=2,max=100"`
	Description *string            `json:"description"`
	Price       *float64           `json:"price" validate:"required,gt=0"`
	Category    *string            `json:"category" validate:"required"`
	Vegan       bool               `json:"vegan"`
	Image       *string            `json:"image"`
	Allergens   []string           `json:"allergens" bson:"allergens"`
	Created_at  time.Time          `json:"created_at"`
	Updated_at  time.Time          `json:"updated_at"`
	Menu_id     string             `json:"menu_id"`
}
