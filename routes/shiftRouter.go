package routes

import (
	controller "github.com/t4thick/cs120-food-truck/controllers"

	"github.com/gin-gonic/gin"
)

func ShiftRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/shifts", controller.GetMyShifts())
	incomingRoutes.POST("/shifts", controller.CreateShift())
	incomingRoutes.POST("/shifts/:shift_id/:action", controller.ShiftAction())
	incomingRoutes.PATCH("/shifts/:shift_id/notes", controller.UpdateShiftNotes())
}
