package routes

import (
	controller "github.com/t4thick/cs120-food-truck/controllers"

	"github.com/gin-gonic/gin"
)

// DealRoutes are public: customers see the running promotions.
func DealRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/deals/active", controller.GetActiveDeals())
}

// DealManagementRoutes require an authenticated, verified staff member.
func DealManagementRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/deals", controller.GetDeals())
	incomingRoutes.POST("/deals", controller.CreateDeal())
	incomingRoutes.PATCH("/deals/:deal_id", controller.UpdateDeal())
}
