package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"livestock-supply-api-server/internal/api/middleware"
	"livestock-supply-api-server/internal/models"
	"livestock-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type FeedHandler struct {
	DB *mongo.Database
}

type FeedPayload struct {
	FeedName     string  `json:"feedName" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	Description  string  `json:"description"`
	Quantity     int64   `json:"quantity" binding:"min=0"`
	Unit         string  `json:"unit" binding:"required"`
	PricePerUnit float64 `json:"pricePerUnit" binding:"min=0"`
	Image        string  `json:"image"`
}

// CreateFeed adds a new feed to the supplier's stock.
func (h *FeedHandler) CreateFeed(c *gin.Context) {
	var payload FeedPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedID, err := store.NextID(context.Background(), h.DB, "feeds")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign feed id"})
		return
	}

	newFeed := models.Feed{
		FeedID:       feedID,
		FeedName:     payload.FeedName,
		Type:         payload.Type,
		Description:  payload.Description,
		Quantity:     payload.Quantity,
		Unit:         payload.Unit,
		PricePerUnit: payload.PricePerUnit,
		Image:        payload.Image,
		SupplierID:   middleware.UserID(c),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := h.DB.Collection("feeds").InsertOne(context.Background(), newFeed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create feed"})
		return
	}

	c.JSON(http.StatusCreated, newFeed)
}

// GetAllFeeds lists the catalog for browsing.
func (h *FeedHandler) GetAllFeeds(c *gin.Context) {
	h.listFeeds(c, bson.M{})
}

// GetMyFeeds lists the signed-in supplier's own feeds.
func (h *FeedHandler) GetMyFeeds(c *gin.Context) {
	h.listFeeds(c, bson.M{"supplierID": middleware.UserID(c)})
}

func (h *FeedHandler) listFeeds(c *gin.Context, filter bson.M) {
	cursor, err := h.DB.Collection("feeds").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query feeds"})
		return
	}
	defer cursor.Close(context.Background())

	var feeds []models.Feed
	if err := cursor.All(context.Background(), &feeds); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode feeds"})
		return
	}
	if feeds == nil {
		feeds = []models.Feed{}
	}

	c.JSON(http.StatusOK, feeds)
}

// GetFeedByID returns one feed.
func (h *FeedHandler) GetFeedByID(c *gin.Context) {
	feedID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feed id"})
		return
	}

	var feed models.Feed
	if err := h.DB.Collection("feeds").FindOne(context.Background(), bson.M{"feedID": feedID}).Decode(&feed); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feed"})
		}
		return
	}

	c.JSON(http.StatusOK, feed)
}

// UpdateFeed edits or restocks a feed the supplier owns.
func (h *FeedHandler) UpdateFeed(c *gin.Context) {
	feedID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feed id"})
		return
	}

	var payload FeedPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := bson.M{"feedID": feedID, "supplierID": middleware.UserID(c)}
	update := bson.M{"$set": bson.M{
		"feedName":     payload.FeedName,
		"type":         payload.Type,
		"description":  payload.Description,
		"quantity":     payload.Quantity,
		"unit":         payload.Unit,
		"pricePerUnit": payload.PricePerUnit,
		"image":        payload.Image,
		"updatedAt":    time.Now(),
	}}

	result, err := h.DB.Collection("feeds").UpdateOne(context.Background(), filter, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update feed"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found or not owned by you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feed updated successfully"})
}

// DeleteFeed removes a feed the supplier owns.
func (h *FeedHandler) DeleteFeed(c *gin.Context) {
	feedID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feed id"})
		return
	}

	filter := bson.M{"feedID": feedID, "supplierID": middleware.UserID(c)}
	result, err := h.DB.Collection("feeds").DeleteOne(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete feed"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found or not owned by you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feed deleted successfully"})
}
