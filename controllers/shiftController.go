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

var shiftCollection *mongo.Collection = database.OpenCollection(database.Client, "shift")

// GetMyShifts lists the requesting staff member's own shifts.
func GetMyShifts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		email := strings.ToLower(c.GetString("email"))
		cursor, err := shiftCollection.Find(ctx, bson.M{"staff_email": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing shifts"})
			return
		}
		var shifts []models.Shift
		if err := cursor.All(ctx, &shifts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing shifts"})
			return
		}
		c.JSON(http.StatusOK, shifts)
	}
}

// CreateShift claims a shift for the requesting staff member. At most one
// shift per staff member per calendar date.
func CreateShift() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if role := c.GetString("user_role"); role != "STAFF" && role != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff can claim shifts"})
			return
		}

		var shift models.Shift
		if err := c.BindJSON(&shift); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// shifts are always claimed for yourself
		email := strings.ToLower(c.GetString("email"))
		shift.Staff_email = &email

		validationErr := validate.Struct(&shift)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		if _, err := services.ParseWorkDate(*shift.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		unlock := services.LockStaffDate(email, *shift.Date)
		defer unlock()

		cursor, err := shiftCollection.Find(ctx, bson.M{"staff_email": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading shifts"})
			return
		}
		var existing []models.Shift
		if err := cursor.All(ctx, &existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading shifts"})
			return
		}
		if services.HasShiftOnDate(existing, email, *shift.Date) {
			c.JSON(http.StatusConflict, gin.H{"error": services.ErrDuplicateShift.Error()})
			return
		}

		shift.Status = models.ShiftScheduled
		shift.Total_hours = 0
		shift.Early_checkout = false
		shift.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		shift.Updated_at = shift.Created_at
		shift.ID = primitive.NewObjectID()
		shift.Shift_id = shift.ID.Hex()

		result, err := shiftCollection.InsertOne(ctx, shift)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "shift was not created"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ShiftAction runs one time-clock transition: check_in, start_break,
// end_break, check_out or check_out_early.
func ShiftAction() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		shiftId := c.Param("shift_id")
		action := c.Param("action")
		email := c.GetString("email")

		unlockKey, shift, status := loadOwnedShift(ctx, c, shiftId, email)
		if status != http.StatusOK {
			return
		}
		defer unlockKey()

		if err := services.ApplyShiftAction(&shift, action, time.Now()); err != nil {
			if errors.Is(err, services.ErrUnknownShiftAction) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			}
			return
		}

		shift.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: shift.Status},
			{Key: "check_in", Value: shift.Check_in},
			{Key: "check_out", Value: shift.Check_out},
			{Key: "break_start", Value: shift.Break_start},
			{Key: "break_end", Value: shift.Break_end},
			{Key: "total_hours", Value: shift.Total_hours},
			{Key: "early_checkout", Value: shift.Early_checkout},
			{Key: "updated_at", Value: shift.Updated_at},
		}}}
		if _, err := shiftCollection.UpdateOne(ctx, bson.M{"shift_id": shiftId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "shift update failed"})
			return
		}
		c.JSON(http.StatusOK, shift)
	}
}

// UpdateShiftNotes lets the owner annotate a shift in any state.
func UpdateShiftNotes() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		shiftId := c.Param("shift_id")
		email := c.GetString("email")

		var payload struct {
			Notes string `json:"notes"`
		}
		if err := c.BindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		unlockKey, shift, status := loadOwnedShift(ctx, c, shiftId, email)
		if status != http.StatusOK {
			return
		}
		defer unlockKey()

		updatedAt, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "notes", Value: payload.Notes},
			{Key: "updated_at", Value: updatedAt},
		}}}
		if _, err := shiftCollection.UpdateOne(ctx, bson.M{"shift_id": shiftId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "shift update failed"})
			return
		}
		shift.Notes = payload.Notes
		shift.Updated_at = updatedAt
		c.JSON(http.StatusOK, shift)
	}
}

// loadOwnedShift fetches a shift and enforces ownership, taking the
// staff+date lock so transitions serialise per shift owner. A non-owner gets
// the same 403 whether or not the shift exists, so shift ids cannot be
// probed. Writes the error response itself and returns the HTTP status.
func loadOwnedShift(ctx context.Context, c *gin.Context, shiftId string, email string) (func(), models.Shift, int) {
	var shift models.Shift
	err := shiftCollection.FindOne(ctx, bson.M{"shift_id": shiftId}).Decode(&shift)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrNotShiftOwner.Error()})
		return nil, shift, http.StatusForbidden
	}
	if !services.OwnsShift(shift, email) {
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrNotShiftOwner.Error()})
		return nil, shift, http.StatusForbidden
	}

	unlock := services.LockStaffDate(email, deref(shift.Date))

	// re-read under the lock so two racing transitions see each other
	if err := shiftCollection.FindOne(ctx, bson.M{"shift_id": shiftId}).Decode(&shift); err != nil {
		unlock()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading the shift"})
		return nil, shift, http.StatusInternalServerError
	}
	return unlock, shift, http.StatusOK
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
