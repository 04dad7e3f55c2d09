package routes

import (
	controller "github.com/t4thick/cs120-food-truck/controllers"

	"github.com/gin-gonic/gin"
)

// MenuRoutes are public: customers browse the menu before ordering.
func MenuRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/menus", controller.GetMenus())
	incomingRoutes.GET("/menus/:menu_id", controller.GetMenu())
}

// MenuManagementRoutes require an authenticated staff member.
func MenuManagementRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/menus", controller.CreateMenu())
	incomingRoutes.PATCH("/menus/:menu_id", controller.UpdateMenu())
	incomingRoutes.DELETE("/menus/:menu_id", controller.DeleteMenu())
}
