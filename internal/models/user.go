package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User struct matches the document in MongoDB.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       int64              `bson:"userID" json:"userID"`
	Email        string             `bson:"email" json:"email"`
	Username     string             `bson:"username" json:"username"`
	Password     string             `bson:"password" json:"-"`
	MobileNumber string             `bson:"mobileNumber" json:"mobileNumber"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Roles understood by the authorization middleware.
const (
	RoleOwner    = "Owner"
	RoleSupplier = "Supplier"
)
