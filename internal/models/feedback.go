package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback matches the document in the "feedbacks" collection.
type Feedback struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FeedbackID   int64              `bson:"feedbackID" json:"feedbackID"`
	UserID       int64              `bson:"userID" json:"userID"`
	FeedbackText string             `bson:"feedbackText" json:"feedbackText"`
	Date         time.Time          `bson:"date" json:"date"`
}
