package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle statuses. Staff move an order forward, never backward.
const (
	OrderStatusPending     = "PENDING"
	OrderStatusPreparation = "PREPARATION DONE"
	OrderStatusReady       = "READY FOR DELIVERY"
)

type OrderLine struct {
	Item_name string `json:"item_name" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=99"`
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id"`
	Order_id       string             `json:"order_id"`
	Order_number   int64              `json:"order_number"`
	Customer_name  *string            `json:"customer_name" validate:"required,min=2,max=100"`
	Customer_email *string            `json:"customer_email" validate:"required,email"`
	Items          []OrderLine        `json:"items" validate:"required,min=1,dive"`
	Items_text     string             `json:"items_text"`
	Allergy_info   string             `json:"allergy_info"`
	Is_safe        string             `json:"is_safe"`
	Status         string             `json:"status"`
	Payment_status string             `json:"payment_status"`
	Created_at     time.Time          `json:"created_at"`
	Updated_at     time.Time          `json:"updated_at"`
}
