package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id"`
	Menu_item_id string             `json:"menu_item_id" bson:"menu_item_id"`
	Name         *string            `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Price        *float64           `json:"price" bson:"price" validate:"required,min=0"`
	Category     *string            `json:"category" bson:"category" validate:"required"`
	Description  *string            `json:"description" bson:"description"`
	Image        *string            `json:"image" bson:"image"`
	Available    *bool              `json:"available" bson:"available" validate:"required"`
	Vegetarian   *bool              `json:"vegetarian" bson:"vegetarian" validate:"required"`
	Created_at   time.Time          `json:"created_at" bson:"created_at"`
	Updated_at   time.Time          `json:"updated_at" bson:"updated_at"`
}
