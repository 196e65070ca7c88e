package inventory

import (
	"context"
	"time"

	"livestock-supply-api-server/internal/models"
)

// StockStore is the contract the coordinator needs from the medicine/feed
// storage. DecrementQuantity must be conditional: it fails with
// ErrInsufficientStock instead of driving the on-hand quantity negative,
// so it is safe to call without external locking.
type StockStore interface {
	Get(ctx context.Context, kind models.Kind, id int64) (*models.StockItem, error)
	DecrementQuantity(ctx context.Context, kind models.Kind, id int64, amount int64) (*models.StockItem, error)
	// IncrementQuantity restocks the item. The coordinator uses it to
	// compensate when the status flip fails after a successful debit.
	IncrementQuantity(ctx context.Context, kind models.Kind, id int64, amount int64) error
}

// RequestStore is the ledger contract. UpdateStatus is a compare-and-swap on
// the status field: it only applies the transition when the current status
// equals from, returning ErrAlreadyFinalized otherwise (or
// ErrRequestNotFound if the request vanished).
type RequestStore interface {
	Insert(ctx context.Context, req *models.Request) (*models.Request, error)
	Get(ctx context.Context, requestID int64) (*models.Request, error)
	UpdateStatus(ctx context.Context, requestID int64, from, to models.RequestStatus) (*models.Request, error)
	ListByStockItem(ctx context.Context, kind models.Kind, stockItemID int64, status models.RequestStatus) ([]models.Request, error)
}

// SubmitCandidate carries the inputs of a new request. A zero MedicineID or
// FeedID means absent.
type SubmitCandidate struct {
	Kind        models.Kind
	MedicineID  int64
	FeedID      int64
	RequesterID int64
	LivestockID int64
	Quantity    int64
	RequestDate time.Time
}
