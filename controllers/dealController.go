package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/t4thick/cs120-food-truck/database"
	"github.com/t4thick/cs120-food-truck/models"
	"github.com/t4thick/cs120-food-truck/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var dealCollection *mongo.Collection = database.OpenCollection(database.Client, "deal")

func GetDeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := dealCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing deals"})
			return
		}
		var allDeals []bson.M
		if err := result.All(ctx, &allDeals); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing deals"})
			return
		}
		c.JSON(http.StatusOK, allDeals)
	}
}

// GetActiveDeals is the public promotions listing: active flag set and not
// expired, newest first.
func GetActiveDeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		cursor, err := dealCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing deals"})
			return
		}
		var deals []models.Deal
		if err := cursor.All(ctx, &deals); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing deals"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": services.ActiveDeals(deals, time.Now())})
	}
}

// CreateDeal lets verified staff publish a promotion.
func CreateDeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if role := c.GetString("user_role"); role != "STAFF" && role != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff can create deals"})
			return
		}
		if !c.GetBool("verified") {
			c.JSON(http.StatusForbidden, gin.H{"error": "only verified staff can create deals"})
			return
		}

		var deal models.Deal
		if err := c.BindJSON(&deal); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		validationErr := validate.Struct(&deal)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		deal.Created_by = c.GetString("email")
		deal.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		deal.Active = true
		deal.ID = primitive.NewObjectID()
		deal.Deal_id = deal.ID.Hex()

		result, err := dealCollection.InsertOne(ctx, deal)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "deal was not created"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// UpdateDeal toggles the active flag or edits the text fields.
func UpdateDeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if role := c.GetString("user_role"); role != "STAFF" && role != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff can update deals"})
			return
		}

		dealId := c.Param("deal_id")
		var deal models.Deal
		if err := c.BindJSON(&deal); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if deal.Title != nil {
			updateObj = append(updateObj, bson.E{Key: "title", Value: deal.Title})
		}
		if deal.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: deal.Description})
		}
		if deal.Discount != nil {
			updateObj = append(updateObj, bson.E{Key: "discount", Value: deal.Discount})
		}
		if deal.Expires_at != "" {
			updateObj = append(updateObj, bson.E{Key: "expires_at", Value: deal.Expires_at})
		}
		updateObj = append(updateObj, bson.E{Key: "active", Value: deal.Active})

		result, err := dealCollection.UpdateOne(
			ctx,
			bson.M{"deal_id": dealId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "deal update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
