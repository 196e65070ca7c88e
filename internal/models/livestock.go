package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Livestock matches the document in the "livestock" collection.
type Livestock struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	LivestockID       int64              `bson:"livestockID" json:"livestockID"`
	Name              string             `bson:"name" json:"name"`
	Species           string             `bson:"species" json:"species"`
	Age               int                `bson:"age" json:"age"`
	Breed             string             `bson:"breed" json:"breed"`
	HealthCondition   string             `bson:"healthCondition,omitempty" json:"healthCondition,omitempty"`
	Location          string             `bson:"location" json:"location"`
	VaccinationStatus string             `bson:"vaccinationStatus,omitempty" json:"vaccinationStatus,omitempty"`
	OwnerID           int64              `bson:"ownerID" json:"ownerID"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
