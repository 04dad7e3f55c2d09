package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/t4thick/cs120-food-truck/database"
	"github.com/t4thick/cs120-food-truck/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var menuCollection *mongo.Collection = database.OpenCollection(database.Client, "menu")
var validate = validator.New()

func GetMenus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := menuCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing the menu items"})
			return
		}
		var allMenus []bson.M
		if err = result.All(ctx, &allMenus); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing the menu items"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"message": "Menu items fetched successfully",
			"data":    allMenus,
		})
	}
}

func GetMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		menuId := c.Param("menu_id")
		var menu models.Menu

		err := menuCollection.FindOne(ctx, bson.M{"menu_id": menuId}).Decode(&menu)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusOK, menu)
	}
}

func CreateMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if role := c.GetString("user_role"); role != "STAFF" && role != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff can manage the menu"})
			return
		}

		var menu models.Menu
		if err := c.BindJSON(&menu); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		validatorErr := validate.Struct(&menu)
		if validatorErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validatorErr.Error()})
			return
		}

		// item names are the catalog key, enforce uniqueness up front
		count, err := menuCollection.CountDocuments(ctx, bson.M{"name": primitive.Regex{
			Pattern: "^" + regexQuote(strings.TrimSpace(*menu.Name)) + "$",
			Options: "i",
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking the item name"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "a menu item with that name already exists"})
			return
		}

		// allergen tags are matched as lowercase substrings later
		for i, allergen := range menu.Allergens {
			menu.Allergens[i] = strings.ToLower(strings.TrimSpace(allergen))
		}

		menu.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		menu.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		menu.ID = primitive.NewObjectID()
		menu.Menu_id = menu.ID.Hex()

		result, insertErr := menuCollection.InsertOne(ctx, menu)
		if insertErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func UpdateMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if role := c.GetString("user_role"); role != "STAFF" && role != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff can manage the menu"})
			return
		}

		var menu models.Menu
		if err := c.BindJSON(&menu); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		menuId := c.Param("menu_id")
		filter := bson.M{"menu_id": menuId}

		var updateObj primitive.D
		if menu.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: menu.Name})
		}
		if menu.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: menu.Description})
		}
		if menu.Price != nil {
			if *menu.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "price", Value: menu.Price})
		}
		if menu.Category != nil {
			updateObj = append(updateObj, bson.E{Key: "category", Value: menu.Category})
		}
		if menu.Image != nil {
			updateObj = append(updateObj, bson.E{Key: "image", Value: menu.Image})
		}
		if menu.Allergens != nil {
			for i, allergen := range menu.Allergens {
				menu.Allergens[i] = strings.ToLower(strings.TrimSpace(allergen))
			}
			updateObj = append(updateObj, bson.E{Key: "allergens", Value: menu.Allergens})
		}
		updateObj = append(updateObj, bson.E{Key: "vegan", Value: menu.Vegan})
		menu.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: menu.Updated_at})

		upsert := false
		opt := options.UpdateOptions{
			Upsert: &upsert,
		}
		result, err := menuCollection.UpdateOne(
			ctx,
			filter,
			bson.D{
				{Key: "$set", Value: updateObj},
			},
			&opt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func DeleteMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if role := c.GetString("user_role"); role != "STAFF" && role != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff can manage the menu"})
			return
		}

		menuId := c.Param("menu_id")
		result, err := menuCollection.DeleteOne(ctx, bson.M{"menu_id": menuId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
	}
}

// regexQuote escapes a user-supplied item name for the uniqueness lookup.
func regexQuote(s string) string {
	special := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
