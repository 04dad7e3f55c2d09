package routes

import (
	controller "github.com/t4thick/cs120-food-truck/controllers"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/admin/dashboard", controller.Dashboard())
	incomingRoutes.GET("/admin/orders/export", controller.ExportOrders())
}
