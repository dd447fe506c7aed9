package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"go-canteen-ordering/database"
	"go-canteen-ordering/models"
	"go-canteen-ordering/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var notificationCollection *mongo.Collection = database.OpenCollection(database.Client, "notifications")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
var clients = make(map[*websocket.Conn]bool)
var mu sync.Mutex

// Message is the envelope pushed to connected dashboards.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

func HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("error during connection upgrade:", err)
			return
		}
		defer conn.Close()

		mu.Lock()
		clients[conn] = true
		mu.Unlock()

		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				mu.Lock()
				delete(clients, conn)
				mu.Unlock()
				break
			}
		}
	}
}

// notifyClients pushes an order event to every connected dashboard.
func notifyClients(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()

	message := Message{Event: event, Payload: payload}
	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Println("error marshaling message:", err)
		return
	}
	for client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			client.Close()
			delete(clients, client)
		}
	}
}

// recordNotification persists an order event so a dashboard that was not
// connected still sees it on its next load.
func recordNotification(ctx context.Context, userRole string, userId string, orderId string, event string) {
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		User_role: userRole,
		User_id:   userId,
		Order_id:  orderId,
		Event:     event,
	}
	notification.Notification_id = notification.ID.Hex()
	if _, err := notificationCollection.InsertOne(ctx, notification); err != nil {
		log.Println("error recording notification:", err)
	}
}

// notificationFilter scopes the feed: staff see their role's feed on top of
// their own, customers see their own notifications only. Order events for a
// customer are recorded under that customer's uid, so a role clause would
// expose every customer's events to every other customer.
func notificationFilter(uid string, role string) bson.M {
	if role == session.RoleAdmin || role == session.RoleCashier {
		return bson.M{"$or": bson.A{
			bson.M{"user_id": uid},
			bson.M{"user_role": role},
		}}
	}
	return bson.M{"user_id": uid}
}

func GetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := notificationFilter(c.GetString("uid"), c.GetString("user_role"))
		result, err := notificationCollection.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching notifications"})
			return
		}
		var notifications []bson.M
		if err := result.All(ctx, &notifications); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while decoding notifications"})
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}

func MarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		notificationId := c.Param("notification_id")
		update := bson.D{{Key: "$set", Value: bson.D{{Key: "is_read", Value: true}}}}
		result, err := notificationCollection.UpdateOne(ctx, bson.M{"notification_id": notificationId}, update)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "notification update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
	}
}
