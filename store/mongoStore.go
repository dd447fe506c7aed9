package store

import (
	"context"
	"errors"
	"time"

	"go-canteen-ordering/database"
	"go-canteen-ordering/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("record not found")

// MongoStore implements Store and UserStore over the canteen database.
type MongoStore struct {
	menuCollection      *mongo.Collection
	orderCollection     *mongo.Collection
	orderItemCollection *mongo.Collection
	userCollection      *mongo.Collection
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{
		menuCollection:      database.OpenCollection(client, "menu_items"),
		orderCollection:     database.OpenCollection(client, "orders"),
		orderItemCollection: database.OpenCollection(client, "order_items"),
		userCollection:      database.OpenCollection(client, "user"),
	}
}

func (s *MongoStore) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	result, err := s.menuCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var items []models.MenuItem
	if err := result.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoStore) InsertMenuItem(ctx context.Context, item models.MenuItem) error {
	_, err := s.menuCollection.InsertOne(ctx, item)
	return err
}

func (s *MongoStore) UpdateMenuItem(ctx context.Context, id string, patch models.MenuItem) error {
	var updateObj primitive.D
	if patch.Name != nil {
		updateObj = append(updateObj, bson.E{Key: "name", Value: patch.Name})
	}
	if patch.Price != nil {
		updateObj = append(updateObj, bson.E{Key: "price", Value: patch.Price})
	}
	if patch.Category != nil {
		updateObj = append(updateObj, bson.E{Key: "category", Value: patch.Category})
	}
	if patch.Description != nil {
		updateObj = append(updateObj, bson.E{Key: "description", Value: patch.Description})
	}
	if patch.Image != nil {
		updateObj = append(updateObj, bson.E{Key: "image", Value: patch.Image})
	}
	if patch.Available != nil {
		updateObj = append(updateObj, bson.E{Key: "available", Value: patch.Available})
	}
	if patch.Vegetarian != nil {
		updateObj = append(updateObj, bson.E{Key: "vegetarian", Value: patch.Vegetarian})
	}
	updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

	result, err := s.menuCollection.UpdateOne(
		ctx,
		bson.M{"menu_item_id": id},
		bson.D{{Key: "$set", Value: updateObj}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteMenuItem(ctx context.Context, id string) error {
	result, err := s.menuCollection.DeleteOne(ctx, bson.M{"menu_item_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Orders(ctx context.Context) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{})
}

func (s *MongoStore) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{"user_id": userID})
}

func (s *MongoStore) OrderByID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := s.orderCollection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	order.Items, err = s.orderItems(ctx, order.Order_id)
	return order, err
}

func (s *MongoStore) MenuItemByID(ctx context.Context, id string) (models.MenuItem, error) {
	var item models.MenuItem
	err := s.menuCollection.FindOne(ctx, bson.M{"menu_item_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return models.MenuItem{}, ErrNotFound
	}
	return item, err
}

func (s *MongoStore) findOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.orderCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := s.orderItems(ctx, orders[i].Order_id)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *MongoStore) orderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	cursor, err := s.orderItemCollection.Find(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return nil, err
	}
	var items []models.OrderItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoStore) InsertOrder(ctx context.Context, order models.Order) (string, error) {
	order.ID = primitive.NewObjectID()
	order.Order_id = order.ID.Hex()
	order.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	order.Updated_at = order.Created_at

	if _, err := s.orderCollection.InsertOne(ctx, order); err != nil {
		return "", err
	}

	orderItemsToBeInserted := []interface{}{}
	for _, item := range order.Items {
		item.ID = primitive.NewObjectID()
		item.Order_item_id = item.ID.Hex()
		item.Order_id = order.Order_id
		item.Created_at = order.Created_at
		item.Updated_at = order.Created_at
		orderItemsToBeInserted = append(orderItemsToBeInserted, item)
	}
	if _, err := s.orderItemCollection.InsertMany(ctx, orderItemsToBeInserted); err != nil {
		// Take the order document back out rather than leave one behind
		// with no items.
		s.orderCollection.DeleteOne(ctx, bson.M{"order_id": order.Order_id})
		return "", err
	}
	return order.Order_id, nil
}

func (s *MongoStore) UpdateOrderStatus(ctx context.Context, orderID string, status string) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
			{Key: "updated_at", Value: time.Now()},
		}},
	}
	result, err := s.orderCollection.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) UpdatePaymentStatus(ctx context.Context, orderID string, status string, method *string) error {
	setObj := bson.D{
		{Key: "payment_status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	}
	if method != nil {
		setObj = append(setObj, bson.E{Key: "payment_method", Value: method})
	}
	result, err := s.orderCollection.UpdateOne(ctx, bson.M{"order_id": orderID}, bson.D{{Key: "$set", Value: setObj}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *MongoStore) CountByEmail(ctx context.Context, email string) (int64, error) {
	return s.userCollection.CountDocuments(ctx, bson.M{"email": email})
}

func (s *MongoStore) InsertUser(ctx context.Context, user models.User) error {
	_, err := s.userCollection.InsertOne(ctx, user)
	return err
}

func (s *MongoStore) SetResetToken(ctx context.Context, email string, token string) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "reset_token", Value: token},
		{Key: "updated_at", Value: time.Now()},
	}}}
	result, err := s.userCollection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ResetPassword(ctx context.Context, token string, hashedPassword string) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: hashedPassword},
		{Key: "reset_token", Value: nil},
		{Key: "updated_at", Value: time.Now()},
	}}}
	result, err := s.userCollection.UpdateOne(ctx, bson.M{"reset_token": token}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
