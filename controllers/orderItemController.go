package controllers

import (
	"context"
	"net/http"
	"time"

	"go-canteen-ordering/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var orderItemCollection *mongo.Collection = database.OpenCollection(database.Client, "order_items")

func GetOrderItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := orderItemCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching order items"})
			return
		}
		var allOrderItems []bson.M
		if err := result.All(ctx, &allOrderItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while decoding order items"})
			return
		}
		c.JSON(http.StatusOK, allOrderItems)
	}
}

func GetOrderItemsByOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		orderId := c.Param("order_id")
		allOrderItems, err := ItemsByOrder(orderId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing order items by order id"})
			return
		}
		c.JSON(http.StatusOK, allOrderItems)
	}
}

// ItemsByOrder joins an order's items with the current menu record (for the
// image) and totals the amount due. Unit prices come from the snapshot on the
// order item, never from the live menu.
func ItemsByOrder(id string) ([]primitive.M, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	matchStage := bson.D{{Key: "$match", Value: bson.D{{Key: "order_id", Value: id}}}}
	lookupStage := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "menu_items"},
		{Key: "localField", Value: "menu_item_id"},
		{Key: "foreignField", Value: "menu_item_id"},
		{Key: "as", Value: "menu_item"},
	}}}
	unwindStage := bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$menu_item"},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}

	projectStage := bson.D{{Key: "$project", Value: bson.D{
		{Key: "amount", Value: bson.D{{Key: "$multiply", Value: bson.A{"$unit_price", "$quantity"}}}},
		{Key: "name", Value: 1},
		{Key: "image", Value: "$menu_item.image"},
		{Key: "order_id", Value: 1},
		{Key: "unit_price", Value: 1},
		{Key: "quantity", Value: 1},
		{Key: "customizations", Value: 1},
	}}}

	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: bson.D{{Key: "order_id", Value: "$order_id"}}},
		{Key: "payment_due", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		{Key: "total_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "order_items", Value: bson.D{{Key: "$push", Value: "$$ROOT"}}},
	}}}

	projectStage2 := bson.D{{Key: "$project", Value: bson.D{
		{Key: "payment_due", Value: 1},
		{Key: "total_count", Value: 1},
		{Key: "order_id", Value: "$_id.order_id"},
		{Key: "order_items", Value: 1},
	}}}

	var orderItems []primitive.M
	result, err := orderItemCollection.Aggregate(
		ctx, mongo.Pipeline{
			matchStage,
			lookupStage,
			unwindStage,
			projectStage,
			groupStage,
			projectStage2,
		})
	if err != nil {
		return nil, err
	}
	if err := result.All(ctx, &orderItems); err != nil {
		return nil, err
	}
	return orderItems, nil
}
