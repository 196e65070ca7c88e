package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feed matches the document in the "feeds" collection.
type Feed struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FeedID       int64              `bson:"feedID" json:"feedID"`
	FeedName     string             `bson:"feedName" json:"feedName"`
	Type         string             `bson:"type" json:"type"`
	Description  string             `bson:"description" json:"description"`
	Quantity     int64              `bson:"quantity" json:"quantity"`
	Unit         string             `bson:"unit" json:"unit"`
	PricePerUnit float64            `bson:"pricePerUnit" json:"pricePerUnit"`
	Image        string             `bson:"image,omitempty" json:"image"`
	SupplierID   int64              `bson:"supplierID" json:"supplierID"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StockItem converts the feed document into the engine's uniform view.
func (f *Feed) StockItem() *StockItem {
	return &StockItem{
		Kind:         KindFeed,
		ID:           f.FeedID,
		Name:         f.FeedName,
		Category:     f.Type,
		Description:  f.Description,
		Unit:         f.Unit,
		PricePerUnit: f.PricePerUnit,
		Quantity:     f.Quantity,
		SupplierID:   f.SupplierID,
	}
}
