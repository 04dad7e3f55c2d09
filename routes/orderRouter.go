package routes

import (
	controller "github.com/t4thick/cs120-food-truck/controllers"

	"github.com/gin-gonic/gin"
)

// OrderRoutes are public: checkout does not require an account.
func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/orders", controller.CreateOrder())
}

// OrderManagementRoutes are the staff-side order endpoints.
func OrderManagementRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/orders", controller.GetOrders())
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder())
	incomingRoutes.PATCH("/orders/:order_id/status", controller.UpdateOrderStatus())
}
