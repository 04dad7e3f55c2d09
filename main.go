package main

import (
	"log"
	"os"
	"time"

	"github.com/t4thick/cs120-food-truck/middleware"
	"github.com/t4thick/cs120-food-truck/routes"
	"github.com/t4thick/cs120-food-truck/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println(".env file not found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// expired promotions with a garbled expiry date normally keep running;
	// set DEAL_FAIL_CLOSED=true to retire them instead
	if os.Getenv("DEAL_FAIL_CLOSED") == "true" {
		services.FailOpenExpiry = false
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:9000"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// public: browsing, checkout and auth
	routes.UserRoutes(router)
	routes.MenuRoutes(router)
	routes.OrderRoutes(router)
	routes.DealRoutes(router)

	// everything below requires a valid token
	router.Use(middleware.Authentication())
	routes.UserManagementRoutes(router)
	routes.MenuManagementRoutes(router)
	routes.OrderManagementRoutes(router)
	routes.DealManagementRoutes(router)
	routes.ScheduleRoutes(router)
	routes.ShiftRoutes(router)
	routes.AdminRoutes(router)

	router.Run(":" + port)
}
