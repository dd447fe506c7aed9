package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type seedMenuItem struct {
	name        string
	price       float64
	category    string
	description string
	vegetarian  bool
}

var seedMenu = []seedMenuItem{
	{"Vegetable Sandwich", 60, "Sandwiches", "Fresh vegetables with cheese in toasted bread", true},
	{"Chicken Burger", 120, "Burgers", "Grilled chicken patty with lettuce and mayo", false},
	{"Cold Coffee", 80, "Beverages", "Chilled coffee with ice cream", true},
	{"Masala Dosa", 90, "South Indian", "Crispy dosa with potato filling", true},
	{"Chicken Biryani", 150, "Main Course", "Fragrant rice cooked with chicken and spices", false},
}

type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

var seedUsers = []seedUser{
	{"Admin User", "admin@canteen.com", "admin123", "admin"},
	{"Cashier User", "cashier@canteen.com", "cashier123", "cashier"},
	{"Customer User", "customer@canteen.com", "customer123", "customer"},
}

// SeedDemoData fills empty menu and user collections with the demo fixtures.
// It never touches collections that already have documents.
func SeedDemoData(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	menuCollection := OpenCollection(client, "menu_items")
	count, err := menuCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("seed: could not inspect menu_items:", err)
		return
	}
	if count == 0 {
		now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		var docs []interface{}
		for _, item := range seedMenu {
			id := primitive.NewObjectID()
			available := true
			docs = append(docs, bson.M{
				"_id":          id,
				"menu_item_id": id.Hex(),
				"name":         item.name,
				"price":        item.price,
				"category":     item.category,
				"description":  item.description,
				"available":    available,
				"vegetarian":   item.vegetarian,
				"created_at":   now,
				"updated_at":   now,
			})
		}
		if _, err := menuCollection.InsertMany(ctx, docs); err != nil {
			log.Println("seed: menu insert failed:", err)
		} else {
			log.Printf("seed: inserted %d menu items", len(docs))
		}
	}

	userCollection := OpenCollection(client, "user")
	count, err = userCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("seed: could not inspect user:", err)
		return
	}
	if count == 0 {
		now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		var docs []interface{}
		for _, user := range seedUsers {
			hashed, err := bcrypt.GenerateFromPassword([]byte(user.password), 14)
			if err != nil {
				log.Println("seed: hash failed:", err)
				return
			}
			id := primitive.NewObjectID()
			docs = append(docs, bson.M{
				"_id":        id,
				"user_id":    id.Hex(),
				"name":       user.name,
				"email":      user.email,
				"password":   string(hashed),
				"user_role":  user.role,
				"created_at": now,
				"updated_at": now,
			})
		}
		if _, err := userCollection.InsertMany(ctx, docs); err != nil {
			log.Println("seed: user insert failed:", err)
		} else {
			log.Printf("seed: inserted %d demo users", len(docs))
		}
	}
}
