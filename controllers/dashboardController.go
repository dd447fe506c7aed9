package controllers

import (
	"context"
	"net/http"
	"time"

	"go-canteen-ordering/canteen"
	"go-canteen-ordering/database"
	"go-canteen-ordering/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "orders")

// AdminDashboard aggregates today's revenue, transaction count, the
// popularity ranking and the menu size.
func AdminDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := canteenStore.Orders(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading orders"})
			return
		}
		menu, err := canteenStore.MenuItems(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading the menu"})
			return
		}

		sales := canteen.ComputeSales(orders, time.Now())
		c.JSON(http.StatusOK, gin.H{
			"revenue_today":      sales.Today,
			"transactions_today": sales.Transactions,
			"popular_items":      sales.PopularItems,
			"menu_size":          len(menu),
		})
	}
}

// CashierDashboard lists orders awaiting payment along with today's tally.
func CashierDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := canteenStore.Orders(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading orders"})
			return
		}

		var pendingPayments []models.Order
		for _, order := range orders {
			if order.Payment_status == "pending" {
				pendingPayments = append(pendingPayments, order)
			}
		}
		sales := canteen.ComputeSales(orders, time.Now())
		c.JSON(http.StatusOK, gin.H{
			"pending_payments": pendingPayments,
			"bills_today":      sales.Transactions,
			"revenue_today":    sales.Today,
		})
	}
}

// GetSalesByDates reports revenue and order counts per calendar day in the
// inclusive date range.
func GetSalesByDates() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		startDate, err := time.Parse("2006-01-02", c.Param("startDate"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date format"})
			return
		}
		endDate, err := time.Parse("2006-01-02", c.Param("endDate"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date format"})
			return
		}

		match := bson.D{{Key: "$match", Value: bson.D{{Key: "created_at", Value: bson.D{
			{Key: "$gte", Value: startDate},
			{Key: "$lte", Value: endDate.AddDate(0, 0, 1)},
		}}}}}
		group := bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$created_at"},
			}}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
			{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}}
		sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}}
		project := bson.D{{Key: "$project", Value: bson.D{
			{Key: "date", Value: "$_id"},
			{Key: "revenue", Value: 1},
			{Key: "orders", Value: 1},
			{Key: "_id", Value: 0},
		}}}

		cursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{match, group, sortStage, project})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching sales"})
			return
		}
		var sales []bson.M
		if err := cursor.All(ctx, &sales); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error decoding sales"})
			return
		}
		c.JSON(http.StatusOK, sales)
	}
}
