package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens the Mongo client and verifies the connection with a ping.
func Connect(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client.Database(dbName), nil
}

// EnsureIndexes creates the unique indexes the stores rely on. Safe to call
// on every startup; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"users":     {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		"medicines": {Keys: bson.D{{Key: "medicineID", Value: 1}}, Options: unique},
		"feeds":     {Keys: bson.D{{Key: "feedID", Value: 1}}, Options: unique},
		"livestock": {Keys: bson.D{{Key: "livestockID", Value: 1}}, Options: unique},
		"requests":  {Keys: bson.D{{Key: "requestID", Value: 1}}, Options: unique},
	}
	for coll, model := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}

	// Requests are queried per stock item and status by the reporter.
	_, err := db.Collection("requests").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "kind", Value: 1}, {Key: "status", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create index on requests: %w", err)
	}
	return nil
}
