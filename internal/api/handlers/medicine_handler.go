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

type MedicineHandler struct {
	DB *mongo.Database
}

type MedicinePayload struct {
	MedicineName string  `json:"medicineName" binding:"required"`
	Brand        string  `json:"brand" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Description  string  `json:"description"`
	Quantity     int64   `json:"quantity" binding:"min=0"`
	Unit         string  `json:"unit" binding:"required"`
	PricePerUnit float64 `json:"pricePerUnit" binding:"min=0"`
	Image        string  `json:"image"`
}

// CreateMedicine adds a new medicine to the supplier's stock.
func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var payload MedicinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	medicineID, err := store.NextID(context.Background(), h.DB, "medicines")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign medicine id"})
		return
	}

	newMedicine := models.Medicine{
		MedicineID:   medicineID,
		MedicineName: payload.MedicineName,
		Brand:        payload.Brand,
		Category:     payload.Category,
		Description:  payload.Description,
		Quantity:     payload.Quantity,
		Unit:         payload.Unit,
		PricePerUnit: payload.PricePerUnit,
		Image:        payload.Image,
		SupplierID:   middleware.UserID(c),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := h.DB.Collection("medicines").InsertOne(context.Background(), newMedicine); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medicine"})
		return
	}

	c.JSON(http.StatusCreated, newMedicine)
}

// GetAllMedicines lists the catalog for browsing.
func (h *MedicineHandler) GetAllMedicines(c *gin.Context) {
	h.listMedicines(c, bson.M{})
}

// GetMyMedicines lists the signed-in supplier's own medicines.
func (h *MedicineHandler) GetMyMedicines(c *gin.Context) {
	h.listMedicines(c, bson.M{"supplierID": middleware.UserID(c)})
}

func (h *MedicineHandler) listMedicines(c *gin.Context, filter bson.M) {
	cursor, err := h.DB.Collection("medicines").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query medicines"})
		return
	}
	defer cursor.Close(context.Background())

	var medicines []models.Medicine
	if err := cursor.All(context.Background(), &medicines); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode medicines"})
		return
	}
	if medicines == nil {
		medicines = []models.Medicine{}
	}

	c.JSON(http.StatusOK, medicines)
}

// GetMedicineByID returns one medicine.
func (h *MedicineHandler) GetMedicineByID(c *gin.Context) {
	medicineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine id"})
		return
	}

	var medicine models.Medicine
	if err := h.DB.Collection("medicines").FindOne(context.Background(), bson.M{"medicineID": medicineID}).Decode(&medicine); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medicine"})
		}
		return
	}

	c.JSON(http.StatusOK, medicine)
}

// UpdateMedicine edits or restocks a medicine the supplier owns. Quantity
// set here is a direct supplier mutation; approvals debit it separately
// through the coordinator.
func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	medicineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine id"})
		return
	}

	var payload MedicinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only the owning supplier may mutate: the filter carries both ids.
	filter := bson.M{"medicineID": medicineID, "supplierID": middleware.UserID(c)}
	update := bson.M{"$set": bson.M{
		"medicineName": payload.MedicineName,
		"brand":        payload.Brand,
		"category":     payload.Category,
		"description":  payload.Description,
		"quantity":     payload.Quantity,
		"unit":         payload.Unit,
		"pricePerUnit": payload.PricePerUnit,
		"image":        payload.Image,
		"updatedAt":    time.Now(),
	}}

	result, err := h.DB.Collection("medicines").UpdateOne(context.Background(), filter, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medicine"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found or not owned by you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medicine updated successfully"})
}

// DeleteMedicine removes a medicine the supplier owns. Pending requests
// against it are left in place; approving one later surfaces a not-found
// error to the supplier.
func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	medicineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine id"})
		return
	}

	filter := bson.M{"medicineID": medicineID, "supplierID": middleware.UserID(c)}
	result, err := h.DB.Collection("medicines").DeleteOne(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete medicine"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found or not owned by you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted successfully"})
}
