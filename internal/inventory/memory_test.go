package inventory

import (
	"context"
	"sync"
	"time"

	"livestock-supply-api-server/internal/models"
)

// In-memory store implementations for the coordinator tests. They mirror the
// conditional semantics of the Mongo-backed stores: decrements never go
// negative and status updates are compare-and-swap.

type memStockStore struct {
	mu    sync.Mutex
	items map[itemKey]*models.StockItem
}

func newMemStockStore(items ...*models.StockItem) *memStockStore {
	s := &memStockStore{items: make(map[itemKey]*models.StockItem)}
	for _, item := range items {
		cp := *item
		s.items[itemKey{item.Kind, item.ID}] = &cp
	}
	return s
}

func (s *memStockStore) Get(_ context.Context, kind models.Kind, id int64) (*models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemKey{kind, id}]
	if !ok {
		return nil, ErrStockItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *memStockStore) DecrementQuantity(_ context.Context, kind models.Kind, id int64, amount int64) (*models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemKey{kind, id}]
	if !ok {
		return nil, ErrStockItemNotFound
	}
	if amount > item.Quantity {
		return nil, ErrInsufficientStock
	}
	item.Quantity -= amount
	cp := *item
	return &cp, nil
}

func (s *memStockStore) IncrementQuantity(_ context.Context, kind models.Kind, id int64, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemKey{kind, id}]
	if !ok {
		return ErrStockItemNotFound
	}
	item.Quantity += amount
	return nil
}

func (s *memStockStore) remove(kind models.Kind, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, itemKey{kind, id})
}

func (s *memStockStore) quantity(kind models.Kind, id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[itemKey{kind, id}].Quantity
}

type memRequestStore struct {
	mu     sync.Mutex
	nextID int64
	reqs   map[int64]*models.Request

	// statusUpdateErr, when set, fails the next UpdateStatus call. Used to
	// exercise the coordinator's rollback path.
	statusUpdateErr error
}

func newMemRequestStore() *memRequestStore {
	return &memRequestStore{reqs: make(map[int64]*models.Request)}
}

func (s *memRequestStore) Insert(_ context.Context, req *models.Request) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	cp := *req
	cp.RequestID = s.nextID
	s.reqs[cp.RequestID] = &cp
	out := cp
	return &out, nil
}

func (s *memRequestStore) Get(_ context.Context, requestID int64) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.reqs[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (s *memRequestStore) UpdateStatus(_ context.Context, requestID int64, from, to models.RequestStatus) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statusUpdateErr != nil {
		err := s.statusUpdateErr
		s.statusUpdateErr = nil
		return nil, err
	}
	req, ok := s.reqs[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if req.Status != from {
		return nil, ErrAlreadyFinalized
	}
	req.Status = to
	now := time.Now()
	req.FinalizedAt = &now
	cp := *req
	return &cp, nil
}

func (s *memRequestStore) ListByStockItem(_ context.Context, kind models.Kind, stockItemID int64, status models.RequestStatus) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Request
	for _, req := range s.reqs {
		if req.Kind == kind && req.StockItemID() == stockItemID && req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}
