package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"livestock-supply-api-server/internal/inventory"
	"livestock-supply-api-server/internal/models"
)

// RequestStore is the Mongo-backed request ledger. Requests are inserted
// with a sequence-assigned integer id and are never deleted; status moves
// only through the compare-and-swap in UpdateStatus.
type RequestStore struct {
	db *mongo.Database
}

func NewRequestStore(db *mongo.Database) *RequestStore {
	return &RequestStore{db: db}
}

func (s *RequestStore) collection() *mongo.Collection {
	return s.db.Collection("requests")
}

func (s *RequestStore) Insert(ctx context.Context, req *models.Request) (*models.Request, error) {
	id, err := NextID(ctx, s.db, "requests")
	if err != nil {
		return nil, fmt.Errorf("assign request id: %w", err)
	}
	cp := *req
	cp.RequestID = id

	result, err := s.collection().InsertOne(ctx, cp)
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		cp.ID = oid
	}
	return &cp, nil
}

func (s *RequestStore) Get(ctx context.Context, requestID int64) (*models.Request, error) {
	var req models.Request
	err := s.collection().FindOne(ctx, bson.M{"requestID": requestID}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, inventory.ErrRequestNotFound
		}
		return nil, fmt.Errorf("get request %d: %w", requestID, err)
	}
	return &req, nil
}

// UpdateStatus flips the status only if the document still carries the
// expected prior status. Losing the race is reported as AlreadyFinalized,
// matching what the concurrent winner made true.
func (s *RequestStore) UpdateStatus(ctx context.Context, requestID int64, from, to models.RequestStatus) (*models.Request, error) {
	now := time.Now()
	res := s.collection().FindOneAndUpdate(
		ctx,
		bson.M{"requestID": requestID, "status": from},
		bson.M{"$set": bson.M{"status": to, "finalizedAt": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Err(); err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("update request %d status: %w", requestID, err)
		}
		count, countErr := s.collection().CountDocuments(ctx, bson.M{"requestID": requestID})
		if countErr != nil {
			return nil, fmt.Errorf("update request %d status: %w", requestID, countErr)
		}
		if count == 0 {
			return nil, inventory.ErrRequestNotFound
		}
		return nil, inventory.ErrAlreadyFinalized
	}

	var req models.Request
	if err := res.Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *RequestStore) ListByStockItem(ctx context.Context, kind models.Kind, stockItemID int64, status models.RequestStatus) ([]models.Request, error) {
	idField := "feedID"
	if kind == models.KindMedicine {
		idField = "medicineID"
	}
	return s.list(ctx, bson.M{"kind": kind, idField: stockItemID, "status": status})
}

// ListByRequester returns every request an owner has submitted.
func (s *RequestStore) ListByRequester(ctx context.Context, requesterID int64) ([]models.Request, error) {
	return s.list(ctx, bson.M{"requesterID": requesterID})
}

// ListForSupplier returns requests targeting any stock item the supplier
// owns. The ids are gathered from the two stock collections first; a
// supplier with no stock simply gets an empty list.
func (s *RequestStore) ListForSupplier(ctx context.Context, supplierID int64) ([]models.Request, error) {
	medicineIDs, err := s.ownedIDs(ctx, "medicines", "medicineID", supplierID)
	if err != nil {
		return nil, err
	}
	feedIDs, err := s.ownedIDs(ctx, "feeds", "feedID", supplierID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"kind": models.KindMedicine, "medicineID": bson.M{"$in": medicineIDs}},
		bson.M{"kind": models.KindFeed, "feedID": bson.M{"$in": feedIDs}},
	}}
	return s.list(ctx, filter)
}

func (s *RequestStore) ownedIDs(ctx context.Context, collName, idField string, supplierID int64) ([]int64, error) {
	values, err := s.db.Collection(collName).Distinct(ctx, idField, bson.M{"supplierID": supplierID})
	if err != nil {
		return nil, fmt.Errorf("list %s for supplier %d: %w", collName, supplierID, err)
	}
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		switch id := v.(type) {
		case int64:
			ids = append(ids, id)
		case int32:
			ids = append(ids, int64(id))
		}
	}
	return ids, nil
}

func (s *RequestStore) list(ctx context.Context, filter bson.M) ([]models.Request, error) {
	cursor, err := s.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.Request
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}
	if requests == nil {
		requests = []models.Request{}
	}
	return requests, nil
}
