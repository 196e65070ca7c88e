package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the lifecycle state of a resource request. A request
// always starts Pending; Approved and Rejected are terminal.
type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusRejected RequestStatus = "Rejected"
)

// Terminal reports whether no further transitions are allowed.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is one requester's claim on a quantity of a single stock item.
// Exactly one of MedicineID/FeedID is set, matching Kind. Requests are never
// deleted; the approved subset doubles as the sales ledger.
type Request struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RequestID   int64              `bson:"requestID" json:"requestID"`
	Kind        Kind               `bson:"kind" json:"kind"`
	MedicineID  int64              `bson:"medicineID,omitempty" json:"medicineID,omitempty"`
	FeedID      int64              `bson:"feedID,omitempty" json:"feedID,omitempty"`
	RequesterID int64              `bson:"requesterID" json:"requesterID"`
	LivestockID int64              `bson:"livestockID" json:"livestockID"`
	Quantity    int64              `bson:"quantity" json:"quantity"`
	Status      RequestStatus      `bson:"status" json:"status"`
	RequestDate time.Time          `bson:"requestDate" json:"requestDate"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	FinalizedAt *time.Time         `bson:"finalizedAt,omitempty" json:"finalizedAt,omitempty"`
}

// StockItemID returns the id of the referenced stock item for this
// request's kind.
func (r *Request) StockItemID() int64 {
	if r.Kind == KindMedicine {
		return r.MedicineID
	}
	return r.FeedID
}
