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

type LivestockHandler struct {
	DB *mongo.Database
}

type LivestockPayload struct {
	Name              string `json:"name" binding:"required"`
	Species           string `json:"species" binding:"required"`
	Age               int    `json:"age" binding:"min=0"`
	Breed             string `json:"breed" binding:"required"`
	HealthCondition   string `json:"healthCondition"`
	Location          string `json:"location" binding:"required"`
	VaccinationStatus string `json:"vaccinationStatus"`
}

// CreateLivestock registers a new animal for the signed-in owner.
func (h *LivestockHandler) CreateLivestock(c *gin.Context) {
	var payload LivestockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	livestockID, err := store.NextID(context.Background(), h.DB, "livestock")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign livestock id"})
		return
	}

	newLivestock := models.Livestock{
		LivestockID:       livestockID,
		Name:              payload.Name,
		Species:           payload.Species,
		Age:               payload.Age,
		Breed:             payload.Breed,
		HealthCondition:   payload.HealthCondition,
		Location:          payload.Location,
		VaccinationStatus: payload.VaccinationStatus,
		OwnerID:           middleware.UserID(c),
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if _, err := h.DB.Collection("livestock").InsertOne(context.Background(), newLivestock); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create livestock"})
		return
	}

	c.JSON(http.StatusCreated, newLivestock)
}

// GetMyLivestock lists the signed-in owner's animals.
func (h *LivestockHandler) GetMyLivestock(c *gin.Context) {
	cursor, err := h.DB.Collection("livestock").Find(context.Background(), bson.M{"ownerID": middleware.UserID(c)})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query livestock"})
		return
	}
	defer cursor.Close(context.Background())

	var livestock []models.Livestock
	if err := cursor.All(context.Background(), &livestock); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode livestock"})
		return
	}
	if livestock == nil {
		livestock = []models.Livestock{}
	}

	c.JSON(http.StatusOK, livestock)
}

// GetLivestockByID returns one animal owned by the signed-in owner.
func (h *LivestockHandler) GetLivestockByID(c *gin.Context) {
	livestockID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid livestock id"})
		return
	}

	var animal models.Livestock
	filter := bson.M{"livestockID": livestockID, "ownerID": middleware.UserID(c)}
	if err := h.DB.Collection("livestock").FindOne(context.Background(), filter).Decode(&animal); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Livestock not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve livestock"})
		}
		return
	}

	c.JSON(http.StatusOK, animal)
}

// UpdateLivestock edits an animal the owner owns.
func (h *LivestockHandler) UpdateLivestock(c *gin.Context) {
	livestockID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid livestock id"})
		return
	}

	var payload LivestockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := bson.M{"livestockID": livestockID, "ownerID": middleware.UserID(c)}
	update := bson.M{"$set": bson.M{
		"name":              payload.Name,
		"species":           payload.Species,
		"age":               payload.Age,
		"breed":             payload.Breed,
		"healthCondition":   payload.HealthCondition,
		"location":          payload.Location,
		"vaccinationStatus": payload.VaccinationStatus,
		"updatedAt":         time.Now(),
	}}

	result, err := h.DB.Collection("livestock").UpdateOne(context.Background(), filter, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update livestock"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Livestock not found or not owned by you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Livestock updated successfully"})
}

// DeleteLivestock removes an animal the owner owns.
func (h *LivestockHandler) DeleteLivestock(c *gin.Context) {
	livestockID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid livestock id"})
		return
	}

	filter := bson.M{"livestockID": livestockID, "ownerID": middleware.UserID(c)}
	result, err := h.DB.Collection("livestock").DeleteOne(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete livestock"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Livestock not found or not owned by you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Livestock deleted successfully"})
}
