package main

import (
	"log"
	"os"
	"time"

	"go-canteen-ordering/database"
	"go-canteen-ordering/middleware"
	routes "go-canteen-ordering/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, relying on environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		database.SeedDemoData(database.Client)
	}

	router := gin.New()
	router.Use(gin.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:9000"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.UserRoutes(router)
	routes.NotificationSocket(router)

	router.Use(middleware.Authentication())
	routes.AuthedUserRoutes(router)
	routes.MenuRoutes(router)
	routes.OrderRoutes(router)
	routes.OrderItemRoutes(router)
	routes.DashboardRoutes(router)
	routes.NotificationRoutes(router)

	router.Run(":" + port)
}
