package store

import (
	"context"

	"go-canteen-ordering/models"
)

// Store is the remote data store contract the state managers talk through.
// The production implementation is Mongo-backed; tests substitute doubles.
type Store interface {
	MenuItems(ctx context.Context) ([]models.MenuItem, error)
	InsertMenuItem(ctx context.Context, item models.MenuItem) error
	UpdateMenuItem(ctx context.Context, id string, patch models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error

	Orders(ctx context.Context) ([]models.Order, error)
	OrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	InsertOrder(ctx context.Context, order models.Order) (string, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status string) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status string, method *string) error
}

// UserStore is the auth subsystem of the remote data store.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	InsertUser(ctx context.Context, user models.User) error
	SetResetToken(ctx context.Context, email string, token string) error
	ResetPassword(ctx context.Context, token string, hashedPassword string) error
}
