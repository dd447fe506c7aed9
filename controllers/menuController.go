package controllers

import (
	"context"
	"net/http"
	"time"

	"go-canteen-ordering/canteen"
	"go-canteen-ordering/database"
	"go-canteen-ordering/models"
	"go-canteen-ordering/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()
var canteenStore *store.MongoStore = store.NewMongoStore(database.Client)

func GetMenuItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		items, err := canteenStore.MenuItems(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing the menu items"})
			return
		}

		filtered := canteen.FilterMenu(items, canteen.MenuFilter{
			Query:         c.Query("q"),
			Category:      c.Query("category"),
			AvailableOnly: c.Query("available") == "true",
		})

		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"message": "Menu items fetched successfully",
			"data":    filtered,
		})
	}
}

func GetMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		menuItemId := c.Param("menu_item_id")

		item, err := canteenStore.MenuItemByID(ctx, menuItemId)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the menu item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func GetMenuCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		items, err := canteenStore.MenuItems(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing categories"})
			return
		}
		c.JSON(http.StatusOK, canteen.Categories(items))
	}
}

func CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var item models.MenuItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validatorErr := validate.Struct(&item); validatorErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validatorErr.Error()})
			return
		}

		item.ID = primitive.NewObjectID()
		item.Menu_item_id = item.ID.Hex()
		item.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		item.Updated_at = item.Created_at

		if err := canteenStore.InsertMenuItem(ctx, item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func UpdateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var patch models.MenuItem
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		menuItemId := c.Param("menu_item_id")

		err := canteenStore.UpdateMenuItem(ctx, menuItemId, patch)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Menu item updated"})
	}
}

func DeleteMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		menuItemId := c.Param("menu_item_id")
		err := canteenStore.DeleteMenuItem(ctx, menuItemId)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item delete failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
	}
}
