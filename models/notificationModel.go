package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification records an order event for a dashboard user, in addition to the
// live websocket push.
type Notification struct {
	ID              primitive.ObjectID `bson:"_id"`
	Notification_id string             `json:"notification_id" bson:"notification_id"`
	User_role       string             `json:"user_role" bson:"user_role"`
	User_id         string             `json:"user_id" bson:"user_id"`
	Order_id        string             `json:"order_id" bson:"order_id"`
	Event           string             `json:"event" bson:"event"`
	Is_read         bool               `json:"is_read" bson:"is_read"`
}
