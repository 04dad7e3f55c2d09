package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/t4thick/cs120-food-truck/database"
	"github.com/t4thick/cs120-food-truck/models"
	"github.com/t4thick/cs120-food-truck/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var scheduleCollection *mongo.Collection = database.OpenCollection(database.Client, "schedule")

func GetSchedules() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := scheduleCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing schedules"})
			return
		}
		var allSchedules []bson.M
		if err := result.All(ctx, &allSchedules); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing schedules"})
			return
		}
		c.JSON(http.StatusOK, allSchedules)
	}
}

// GetAvailableSlots lists the open time slots for a staff member on a date,
// in the fixed slot order. Non-working days come back empty.
func GetAvailableSlots() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		staffEmail := c.Query("staff_email")
		date := c.Query("date")
		if staffEmail == "" || date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "staff_email and date are required"})
			return
		}

		rows, err := loadSchedules(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading schedules"})
			return
		}

		slots := services.AvailableSlots(rows, staffEmail, date)
		c.JSON(http.StatusOK, gin.H{"available_slots": slots})
	}
}

// BookSchedule books one staff member into one slot on one date. The
// check-then-insert runs under a per staff+date lock so concurrent requests
// cannot double-book.
func BookSchedule() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if role := c.GetString("user_role"); role != "STAFF" && role != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff can book schedules"})
			return
		}

		var schedule models.Schedule
		if err := c.BindJSON(&schedule); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		validationErr := validate.Struct(&schedule)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		staffEmail := strings.ToLower(*schedule.Staff_email)
		schedule.Staff_email = &staffEmail

		var staff models.User
		err := userCollection.FindOne(ctx, bson.M{"email": staffEmail}).Decode(&staff)
		if err != nil || (*staff.User_role != "STAFF" && *staff.User_role != "ADMIN") {
			c.JSON(http.StatusNotFound, gin.H{"error": services.ErrStaffNotFound.Error()})
			return
		}
		schedule.Staff_name = *staff.Name

		unlock := services.LockStaffDate(staffEmail, *schedule.Date)
		defer unlock()

		rows, err := loadSchedules(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading schedules"})
			return
		}

		if err := services.ValidateBooking(rows, *schedule.Date, *schedule.Time_slot, staffEmail); err != nil {
			c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		schedule.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		schedule.ID = primitive.NewObjectID()
		schedule.Schedule_id = schedule.ID.Hex()

		result, err := scheduleCollection.InsertOne(ctx, schedule)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "schedule was not created"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func loadSchedules(ctx context.Context) ([]models.Schedule, error) {
	cursor, err := scheduleCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var rows []models.Schedule
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSlotConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrStaffNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
