package handlers

import (
	"context"
	"net/http"
	"time"

	"livestock-supply-api-server/internal/auth"
	"livestock-supply-api-server/internal/models"
	"livestock-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserHandler struct {
	DB            *mongo.Database
	TokenLifetime time.Duration
}

type RegisterPayload struct {
	Email        string `json:"email" binding:"required,email"`
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
	Role         string `json:"role" binding:"required,oneof=Owner Supplier"`
}

type LoginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new Owner or Supplier account and signs them in.
func (h *UserHandler) Register(c *gin.Context) {
	var payload RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("users")

	count, err := collection.CountDocuments(context.Background(), bson.M{"email": payload.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for user"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(payload.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userID, err := store.NextID(context.Background(), h.DB, "users")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign user id"})
		return
	}

	newUser := models.User{
		UserID:       userID,
		Email:        payload.Email,
		Username:     payload.Username,
		Password:     hashedPassword,
		MobileNumber: payload.MobileNumber,
		Role:         payload.Role,
		CreatedAt:    time.Now(),
	}
	if _, err := collection.InsertOne(context.Background(), newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := auth.GenerateJWT(newUser.UserID, newUser.Email, newUser.Role, h.TokenLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"message": "User registered successfully",
	})
}

// Login verifies credentials and issues a JWT carrying the user id and role.
func (h *UserHandler) Login(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"email": payload.Email}).Decode(&user)
	if err != nil {
		// Same response for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !auth.CheckPasswordHash(payload.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.UserID, user.Email, user.Role, h.TokenLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "Login successful",
	})
}
