package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-canteen-ordering/checkout"
	"go-canteen-ordering/models"
	"go-canteen-ordering/session"
	"go-canteen-ordering/store"

	"github.com/gin-gonic/gin"
)

func PlaceOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var order models.Order
		if err := c.BindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&order); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		uid := c.GetString("uid")
		order.User_id = &uid

		// The billed total must match what this server would bill for the
		// same items; reject drift before anything is persisted.
		var subtotal float64
		for _, item := range order.Items {
			subtotal += *item.Unit_price * float64(*item.Quantity)
		}
		if expected := checkout.Bill(subtotal); order.Total != expected {
			msg := fmt.Sprintf("order total %.2f does not match billed total %.2f", order.Total, expected)
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		orderId, err := canteenStore.InsertOrder(ctx, order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}
		order.Order_id = orderId

		notifyClients("newOrder", order)
		recordNotification(ctx, session.RoleCashier, uid, orderId, "newOrder")

		c.JSON(http.StatusOK, gin.H{"order_id": orderId})
	}
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var orders []models.Order
		var err error
		// Customers only ever see their own orders; staff see everything.
		if c.GetString("user_role") == session.RoleCustomer {
			orders, err = canteenStore.OrdersByUser(ctx, c.GetString("uid"))
		} else {
			orders, err = canteenStore.Orders(ctx)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		order, err := canteenStore.OrderByID(ctx, orderId)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}
		if c.GetString("user_role") == session.RoleCustomer {
			if order.User_id == nil || *order.User_id != c.GetString("uid") {
				c.JSON(http.StatusForbidden, gin.H{"error": "you are not allowed to view this order"})
				return
			}
		}
		c.JSON(http.StatusOK, order)
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,eq=pending|eq=preparing|eq=ready|eq=completed"`
}

func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var req orderStatusRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		err := canteenStore.UpdateOrderStatus(ctx, orderId, req.Status)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order status update failed"})
			return
		}

		order, err := canteenStore.OrderByID(ctx, orderId)
		if err == nil {
			notifyClients("orderStatus", order)
			if order.User_id != nil {
				recordNotification(ctx, session.RoleCustomer, *order.User_id, orderId, "orderStatus")
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Order status updated to %s", req.Status)})
	}
}

type paymentStatusRequest struct {
	Payment_status string  `json:"payment_status" validate:"required,eq=pending|eq=completed"`
	Payment_method *string `json:"payment_method" validate:"omitempty,eq=cash|eq=card|eq=upi"`
}

func UpdatePaymentStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var req paymentStatusRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		err := canteenStore.UpdatePaymentStatus(ctx, orderId, req.Payment_status, req.Payment_method)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment status update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Payment status updated to %s", req.Payment_status)})
	}
}
