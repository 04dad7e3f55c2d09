package controllers

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/t4thick/cs120-food-truck/models"
	"github.com/t4thick/cs120-food-truck/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// Dashboard returns the admin landing counts: orders per status, staff
// headcount, bookings and live promotions.
func Dashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if c.GetString("user_role") != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}

		orderCounts := gin.H{}
		for _, status := range []string{models.OrderStatusPending, models.OrderStatusPreparation, models.OrderStatusReady} {
			count, err := orderCollection.CountDocuments(ctx, bson.M{"status": status})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while building the dashboard"})
				return
			}
			orderCounts[status] = count
		}

		staffCount, err := userCollection.CountDocuments(ctx, bson.M{"user_role": bson.M{"$in": []string{"STAFF", "ADMIN"}}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while building the dashboard"})
			return
		}
		scheduleCount, err := scheduleCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while building the dashboard"})
			return
		}

		cursor, err := dealCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while building the dashboard"})
			return
		}
		var deals []models.Deal
		if err := cursor.All(ctx, &deals); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while building the dashboard"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":       orderCounts,
			"staff_count":  staffCount,
			"bookings":     scheduleCount,
			"active_deals": len(services.ActiveDeals(deals, time.Now())),
		})
	}
}

// ExportOrders streams the full orders ledger as CSV, the shape the old
// flat-file reports used.
func ExportOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if c.GetString("user_role") != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}

		cursor, err := orderCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while exporting orders"})
			return
		}
		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while exporting orders"})
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="orders.csv"`)

		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"Order_Number", "Customer_Name", "Customer_Email", "Items", "Allergy_Info", "Is_Safe", "Status", "Timestamp"})
		for _, order := range orders {
			record := []string{
				strconv.FormatInt(order.Order_number, 10),
				deref(order.Customer_name),
				deref(order.Customer_email),
				order.Items_text,
				order.Allergy_info,
				order.Is_safe,
				order.Status,
				order.Created_at.Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				fmt.Println("Error writing csv record:", err)
				return
			}
		}
		w.Flush()
	}
}
