package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"livestock-supply-api-server/internal/models"
)

// maxApprovalAttempts bounds the re-read/retry loop that absorbs stock
// changes made by writers outside this process.
const maxApprovalAttempts = 3

type itemKey struct {
	kind models.Kind
	id   int64
}

// Coordinator enforces the request lifecycle and keeps the approved-quantity
// ledger consistent with the stock it debits. Every read-check-write sequence
// against one stock item runs behind a per-item lock; the conditional
// primitives of the stores catch whatever slips past it, such as another
// server instance sharing the same database.
type Coordinator struct {
	stocks   StockStore
	requests RequestStore

	mu    sync.Mutex
	locks map[itemKey]*sync.Mutex
}

func NewCoordinator(stocks StockStore, requests RequestStore) *Coordinator {
	return &Coordinator{
		stocks:   stocks,
		requests: requests,
		locks:    make(map[itemKey]*sync.Mutex),
	}
}

// lockItem serializes callers per stock item, not globally. Two approvals
// for different items proceed in parallel.
func (c *Coordinator) lockItem(key itemKey) func() {
	c.mu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	c.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// SubmitRequest validates a candidate against current stock and persists it
// as Pending. The stock check is advisory only: nothing is reserved, and
// approval re-validates against live quantity.
func (c *Coordinator) SubmitRequest(ctx context.Context, cand SubmitCandidate) (*models.Request, error) {
	if err := cand.validateShape(); err != nil {
		return nil, err
	}
	if cand.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if cand.LivestockID == 0 {
		return nil, ErrMissingLivestockReference
	}

	item, err := c.stocks.Get(ctx, cand.Kind, cand.stockItemID())
	if err != nil {
		return nil, err
	}
	if cand.Quantity > item.Quantity {
		return nil, ErrInsufficientStock
	}

	now := time.Now()
	date := cand.RequestDate
	if date.IsZero() {
		date = now
	}

	req := &models.Request{
		Kind:        cand.Kind,
		MedicineID:  cand.MedicineID,
		FeedID:      cand.FeedID,
		RequesterID: cand.RequesterID,
		LivestockID: cand.LivestockID,
		Quantity:    cand.Quantity,
		Status:      models.StatusPending,
		RequestDate: date,
		CreatedAt:   now,
	}
	return c.requests.Insert(ctx, req)
}

// ApproveRequest transitions a Pending request to Approved and debits the
// stock item by the requested quantity, all-or-nothing. Stock is re-checked
// here regardless of what submission saw: the two checks are separated by
// unbounded time and other approvals may have drained the item in between.
func (c *Coordinator) ApproveRequest(ctx context.Context, requestID, actingSupplierID int64) (*models.Request, error) {
	req, err := c.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	unlock := c.lockItem(itemKey{req.Kind, req.StockItemID()})
	defer unlock()

	// The first read only located the item key; re-read under the lock so
	// the status we act on cannot be finalized concurrently.
	req, err = c.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPending {
		return nil, ErrAlreadyFinalized
	}

	for attempt := 0; attempt < maxApprovalAttempts; attempt++ {
		item, err := c.stocks.Get(ctx, req.Kind, req.StockItemID())
		if err != nil {
			// A deleted stock item with a pending request is surfaced
			// to the supplier to resolve, never auto-rejected.
			return nil, err
		}
		if actingSupplierID != 0 && item.SupplierID != actingSupplierID {
			return nil, ErrPermissionDenied
		}
		if req.Quantity > item.Quantity {
			return nil, ErrInsufficientStock
		}

		if _, err := c.stocks.DecrementQuantity(ctx, req.Kind, req.StockItemID(), req.Quantity); err != nil {
			if errors.Is(err, ErrInsufficientStock) {
				// The quantity check passed but the conditional debit
				// lost to a writer outside this process. Re-read and
				// try again.
				continue
			}
			return nil, err
		}

		updated, err := c.requests.UpdateStatus(ctx, requestID, models.StatusPending, models.StatusApproved)
		if err != nil {
			// The debit must not stand without the status flip. Put
			// the stock back before reporting.
			if rbErr := c.stocks.IncrementQuantity(ctx, req.Kind, req.StockItemID(), req.Quantity); rbErr != nil {
				return nil, fmt.Errorf("approve request %d: rollback after %v failed: %w", requestID, err, rbErr)
			}
			return nil, err
		}
		return updated, nil
	}

	return nil, ErrConcurrentModification
}

// RejectRequest transitions a Pending request to Rejected. Stock is never
// touched, whatever the requested amount.
func (c *Coordinator) RejectRequest(ctx context.Context, requestID, actingSupplierID int64) (*models.Request, error) {
	req, err := c.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	unlock := c.lockItem(itemKey{req.Kind, req.StockItemID()})
	defer unlock()

	req, err = c.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPending {
		return nil, ErrAlreadyFinalized
	}

	if actingSupplierID != 0 {
		item, err := c.stocks.Get(ctx, req.Kind, req.StockItemID())
		if err != nil {
			return nil, err
		}
		if item.SupplierID != actingSupplierID {
			return nil, ErrPermissionDenied
		}
	}

	return c.requests.UpdateStatus(ctx, requestID, models.StatusPending, models.StatusRejected)
}

func (cand SubmitCandidate) validateShape() error {
	switch cand.Kind {
	case models.KindMedicine:
		if cand.MedicineID == 0 || cand.FeedID != 0 {
			return ErrInvalidRequestShape
		}
	case models.KindFeed:
		if cand.FeedID == 0 || cand.MedicineID != 0 {
			return ErrInvalidRequestShape
		}
	default:
		return ErrInvalidRequestShape
	}
	return nil
}

func (cand SubmitCandidate) stockItemID() int64 {
	if cand.Kind == models.KindMedicine {
		return cand.MedicineID
	}
	return cand.FeedID
}
