package database

import (
	"context"
	"log"
	"time"

	"livestock-supply-api-server/internal/auth"
	"livestock-supply-api-server/internal/models"
	"livestock-supply-api-server/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedDemoAccounts creates one supplier and one owner account so a fresh
// deployment can be exercised immediately. Skipped when any user exists.
func SeedDemoAccounts(db *mongo.Database) error {
	userCollection := db.Collection("users")

	count, err := userCollection.CountDocuments(context.Background(), bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Users already exist. Seeding skipped.")
		return nil
	}

	log.Println("No users found. Seeding demo accounts...")

	accounts := []struct {
		email    string
		username string
		role     string
	}{
		{"supplier@example.com", "Demo Supplier", models.RoleSupplier},
		{"owner@example.com", "Demo Owner", models.RoleOwner},
	}

	for _, account := range accounts {
		hashedPassword, err := auth.HashPassword("changeme123")
		if err != nil {
			return err
		}
		userID, err := store.NextID(context.Background(), db, "users")
		if err != nil {
			return err
		}
		user := models.User{
			UserID:    userID,
			Email:     account.email,
			Username:  account.username,
			Password:  hashedPassword,
			Role:      account.role,
			CreatedAt: time.Now(),
		}
		if _, err := userCollection.InsertOne(context.Background(), user); err != nil {
			return err
		}
	}

	log.Println("Demo accounts seeded successfully.")
	return nil
}
