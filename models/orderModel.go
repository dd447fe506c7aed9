package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values move forward only: pending -> preparing -> ready -> completed.
type Order struct {
	ID             primitive.ObjectID `bson:"_id"`
	Order_id       string             `json:"order_id" bson:"order_id"`
	Items          []OrderItem        `json:"items" bson:"-" validate:"required,min=1,dive"`
	Status         string             `json:"status" bson:"status" validate:"required,eq=pending|eq=preparing|eq=ready|eq=completed"`
	Total          float64            `json:"total" bson:"total" validate:"min=0"`
	Customer_name  *string            `json:"customer_name" bson:"customer_name"`
	Order_type     string             `json:"order_type" bson:"order_type" validate:"required,eq=dine-in|eq=takeaway|eq=scheduled"`
	Payment_status string             `json:"payment_status" bson:"payment_status" validate:"required,eq=pending|eq=completed"`
	Payment_method *string            `json:"payment_method" bson:"payment_method" validate:"omitempty,eq=cash|eq=card|eq=upi"`
	User_id        *string            `json:"user_id" bson:"user_id"`
	Created_at     time.Time          `json:"created_at" bson:"created_at"`
	Updated_at     time.Time          `json:"updated_at" bson:"updated_at"`
}

// OrderItem snapshots the menu item name and unit price at the time the order
// was placed so later catalog edits cannot drift a billed order.
type OrderItem struct {
	ID             primitive.ObjectID `bson:"_id"`
	Order_item_id  string             `json:"order_item_id" bson:"order_item_id"`
	Order_id       string             `json:"order_id" bson:"order_id"`
	Menu_item_id   *string            `json:"menu_item_id" bson:"menu_item_id" validate:"required"`
	Name           *string            `json:"name" bson:"name" validate:"required"`
	Quantity       *int               `json:"quantity" bson:"quantity" validate:"required,min=1"`
	Unit_price     *float64           `json:"unit_price" bson:"unit_price" validate:"required,min=0"`
	Customizations *string            `json:"customizations" bson:"customizations"`
	Created_at     time.Time          `json:"created_at" bson:"created_at"`
	Updated_at     time.Time          `json:"updated_at" bson:"updated_at"`
}
