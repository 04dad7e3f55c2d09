package routes

import (
	"time"

	controller "github.com/t4thick/cs120-food-truck/controllers"
	"github.com/t4thick/cs120-food-truck/middleware"

	"github.com/gin-gonic/gin"
)

// UserRoutes are the public auth endpoints. Login, signup and verification
// are rate limited per IP.
func UserRoutes(incomingRoutes *gin.Engine) {
	limited := middleware.RateLimit(5, 5*time.Minute)
	incomingRoutes.POST("/users/signup", limited, controller.SignUp())
	incomingRoutes.POST("/users/login", limited, controller.Login())
	incomingRoutes.POST("/users/verify", limited, controller.VerifyEmail())
	incomingRoutes.POST("/users/request-verification-code", limited, controller.RequestVerificationCode())
	incomingRoutes.GET("/ws", controller.HandleWebSocket())
}

// UserManagementRoutes require authentication.
func UserManagementRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/users", controller.GetUsers())
	incomingRoutes.GET("/users/:user_id", controller.GetUser())
	incomingRoutes.PATCH("/users/:user_id", controller.UpdateUser())
}
