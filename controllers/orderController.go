package controllers

import (
	"context"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")
var counterCollection *mongo.Collection = database.OpenCollection(database.Client, "counters")

// nextOrderNumber reserves the next value of a durable counter, so order
// numbers stay monotonic across restarts and never collide.
func nextOrderNumber(ctx context.Context) (int64, error) {
	upsert := true
	after := options.After
	opt := options.FindOneAndUpdateOptions{
		Upsert:         &upsert,
		ReturnDocument: &after,
	}

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := counterCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "order_number"},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
		&opt,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := orderCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		var allOrders []bson.M
		if err := result.All(ctx, &allOrders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, allOrders)
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var order models.Order

		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// CreateOrder takes a structured item list, resolves every line against the
// menu catalog, screens the order against the customer's allergy disclosure
// and records the verdict on the order.
func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var order models.Order
		if err := c.BindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		validationErr := validate.Struct(&order)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		cursor, err := menuCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading the menu"})
			return
		}
		var menuItems []models.Menu
		if err := cursor.All(ctx, &menuItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading the menu"})
			return
		}
		catalog := services.BuildAllergenCatalog(menuItems)

		// order lines are weak references by name, resolve them now
		for _, line := range order.Items {
			if _, ok := catalog[strings.ToLower(strings.TrimSpace(line.Item_name))]; !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found: " + line.Item_name})
				return
			}
		}

		order.Items_text = services.RenderItemsText(order.Items)
		if services.IsOrderSafe(order.Items_text, order.Allergy_info, catalog) {
			order.Is_safe = "YES"
		} else {
			order.Is_safe = "NO"
		}

		orderNumber, err := nextOrderNumber(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}
		order.Order_number = orderNumber
		order.Status = models.OrderStatusPending
		if order.Payment_status == "" {
			// payment gateway is an opaque external service
			order.Payment_status = "PENDING"
		}

		order.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		order.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		order.ID = primitive.NewObjectID()
		order.Order_id = order.ID.Hex()

		_, err = orderCollection.InsertOne(ctx, order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}

		notifyNewOrder(order)

		if order.Is_safe == "YES" {
			c.JSON(http.StatusOK, gin.H{
				"order":   order,
				"message": "Order placed successfully and appears safe based on the allergy information.",
			})
		} else {
			c.JSON(http.StatusOK, gin.H{
				"order":   order,
				"message": "Order recorded, BUT this order may NOT be safe based on the allergy information. Please review before serving.",
			})
		}
	}
}

// statusRank makes the order lifecycle forward-only.
var statusRank = map[string]int{
	models.OrderStatusPending:     0,
	models.OrderStatusPreparation: 1,
	models.OrderStatusReady:       2,
}

// UpdateOrderStatus lets staff advance an order through
// PENDING -> PREPARATION DONE -> READY FOR DELIVERY.
func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if role := c.GetString("user_role"); role != "STAFF" && role != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff can update order status"})
			return
		}

		orderId := c.Param("order_id")
		var payload struct {
			Status string `json:"status"`
		}
		if err := c.BindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		newRank, ok := statusRank[payload.Status]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
			return
		}

		var order models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if newRank <= statusRank[order.Status] {
			c.JSON(http.StatusConflict, gin.H{"error": "order status can only move forward"})
			return
		}

		updatedAt, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		_, err := orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId},
			bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: payload.Status}, {Key: "updated_at", Value: updatedAt}}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order status update failed"})
			return
		}

		order.Status = payload.Status
		order.Updated_at = updatedAt
		notifyOrderStatus(order)

		c.JSON(http.StatusOK, order)
	}
}
