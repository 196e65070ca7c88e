package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"livestock-supply-api-server/internal/inventory"
	"livestock-supply-api-server/internal/models"
)

// StockStore serves medicine and feed documents to the coordinator through
// the uniform StockItem view. The two kinds live in separate collections
// with separate id sequences.
type StockStore struct {
	db *mongo.Database
}

func NewStockStore(db *mongo.Database) *StockStore {
	return &StockStore{db: db}
}

func (s *StockStore) collection(kind models.Kind) (*mongo.Collection, string) {
	if kind == models.KindMedicine {
		return s.db.Collection("medicines"), "medicineID"
	}
	return s.db.Collection("feeds"), "feedID"
}

func (s *StockStore) decode(kind models.Kind, res *mongo.SingleResult) (*models.StockItem, error) {
	if kind == models.KindMedicine {
		var m models.Medicine
		if err := res.Decode(&m); err != nil {
			return nil, err
		}
		return m.StockItem(), nil
	}
	var f models.Feed
	if err := res.Decode(&f); err != nil {
		return nil, err
	}
	return f.StockItem(), nil
}

func (s *StockStore) Get(ctx context.Context, kind models.Kind, id int64) (*models.StockItem, error) {
	coll, idField := s.collection(kind)
	res := coll.FindOne(ctx, bson.M{idField: id})
	if err := res.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, inventory.ErrStockItemNotFound
		}
		return nil, fmt.Errorf("get %s %d: %w", kind, id, err)
	}
	return s.decode(kind, res)
}

// DecrementQuantity debits the item in a single conditional update: the
// quantity-gte filter makes it impossible to drive stock negative, whatever
// the interleaving. A non-matching filter is disambiguated into not-found
// versus insufficient-stock with a follow-up count.
func (s *StockStore) DecrementQuantity(ctx context.Context, kind models.Kind, id int64, amount int64) (*models.StockItem, error) {
	coll, idField := s.collection(kind)
	res := coll.FindOneAndUpdate(
		ctx,
		bson.M{idField: id, "quantity": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"quantity": -amount}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Err(); err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("decrement %s %d: %w", kind, id, err)
		}
		count, countErr := coll.CountDocuments(ctx, bson.M{idField: id})
		if countErr != nil {
			return nil, fmt.Errorf("decrement %s %d: %w", kind, id, countErr)
		}
		if count == 0 {
			return nil, inventory.ErrStockItemNotFound
		}
		return nil, inventory.ErrInsufficientStock
	}
	return s.decode(kind, res)
}

func (s *StockStore) IncrementQuantity(ctx context.Context, kind models.Kind, id int64, amount int64) error {
	coll, idField := s.collection(kind)
	res, err := coll.UpdateOne(ctx, bson.M{idField: id}, bson.M{"$inc": bson.M{"quantity": amount}})
	if err != nil {
		return fmt.Errorf("increment %s %d: %w", kind, id, err)
	}
	if res.MatchedCount == 0 {
		return inventory.ErrStockItemNotFound
	}
	return nil
}
