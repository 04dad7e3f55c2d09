package routes

import (
	controller "github.com/t4thick/cs120-food-truck/controllers"

	"github.com/gin-gonic/gin"
)

func ScheduleRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/schedules", controller.GetSchedules())
	incomingRoutes.GET("/schedules/available", controller.GetAvailableSlots())
	incomingRoutes.POST("/schedules", controller.BookSchedule())
}
