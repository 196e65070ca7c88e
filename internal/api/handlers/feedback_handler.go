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

type FeedbackHandler struct {
	DB *mongo.Database
}

type FeedbackPayload struct {
	FeedbackText string `json:"feedbackText" binding:"required"`
}

// CreateFeedback records a feedback entry for the signed-in user.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var payload FeedbackPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedbackID, err := store.NextID(context.Background(), h.DB, "feedbacks")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign feedback id"})
		return
	}

	newFeedback := models.Feedback{
		FeedbackID:   feedbackID,
		UserID:       middleware.UserID(c),
		FeedbackText: payload.FeedbackText,
		Date:         time.Now(),
	}

	if _, err := h.DB.Collection("feedbacks").InsertOne(context.Background(), newFeedback); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create feedback"})
		return
	}

	c.JSON(http.StatusCreated, newFeedback)
}

// GetAllFeedback lists every feedback entry.
func (h *FeedbackHandler) GetAllFeedback(c *gin.Context) {
	h.listFeedback(c, bson.M{})
}

// GetMyFeedback lists the signed-in user's own entries.
func (h *FeedbackHandler) GetMyFeedback(c *gin.Context) {
	h.listFeedback(c, bson.M{"userID": middleware.UserID(c)})
}

func (h *FeedbackHandler) listFeedback(c *gin.Context, filter bson.M) {
	cursor, err := h.DB.Collection("feedbacks").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query feedback"})
		return
	}
	defer cursor.Close(context.Background())

	var feedback []models.Feedback
	if err := cursor.All(context.Background(), &feedback); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode feedback"})
		return
	}
	if feedback == nil {
		feedback = []models.Feedback{}
	}

	c.JSON(http.StatusOK, feedback)
}

// DeleteFeedback removes one of the signed-in user's own entries.
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	feedbackID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback id"})
		return
	}

	filter := bson.M{"feedbackID": feedbackID, "userID": middleware.UserID(c)}
	result, err := h.DB.Collection("feedbacks").DeleteOne(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete feedback"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found or not owned by you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
