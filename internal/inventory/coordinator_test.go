package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"livestock-supply-api-server/internal/models"
)

const testSupplierID = int64(77)

func feedItem(id, quantity int64) *models.StockItem {
	return &models.StockItem{
		Kind:         models.KindFeed,
		ID:           id,
		Name:         "Alfalfa Pellets",
		Unit:         "kg",
		PricePerUnit: 2.5,
		Quantity:     quantity,
		SupplierID:   testSupplierID,
	}
}

func feedCandidate(feedID, quantity int64) SubmitCandidate {
	return SubmitCandidate{
		Kind:        models.KindFeed,
		FeedID:      feedID,
		RequesterID: 5,
		LivestockID: 9,
		Quantity:    quantity,
	}
}

func newTestCoordinator(items ...*models.StockItem) (*Coordinator, *memStockStore, *memRequestStore) {
	stocks := newMemStockStore(items...)
	requests := newMemRequestStore()
	return NewCoordinator(stocks, requests), stocks, requests
}

func TestSubmitRequestValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		cand SubmitCandidate
		want error
	}{
		{
			name: "both ids set",
			cand: SubmitCandidate{Kind: models.KindFeed, FeedID: 1, MedicineID: 2, LivestockID: 9, Quantity: 1},
			want: ErrInvalidRequestShape,
		},
		{
			name: "neither id set",
			cand: SubmitCandidate{Kind: models.KindFeed, LivestockID: 9, Quantity: 1},
			want: ErrInvalidRequestShape,
		},
		{
			name: "id does not match kind",
			cand: SubmitCandidate{Kind: models.KindMedicine, FeedID: 1, LivestockID: 9, Quantity: 1},
			want: ErrInvalidRequestShape,
		},
		{
			name: "unknown kind",
			cand: SubmitCandidate{Kind: "Hay", FeedID: 1, LivestockID: 9, Quantity: 1},
			want: ErrInvalidRequestShape,
		},
		{
			// Shape is checked before quantity, so a malformed candidate
			// with a bad quantity still reports the shape error.
			name: "shape error wins over quantity error",
			cand: SubmitCandidate{Kind: models.KindFeed, FeedID: 1, MedicineID: 2, LivestockID: 9, Quantity: 0},
			want: ErrInvalidRequestShape,
		},
		{
			name: "zero quantity",
			cand: SubmitCandidate{Kind: models.KindFeed, FeedID: 1, LivestockID: 9, Quantity: 0},
			want: ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			cand: SubmitCandidate{Kind: models.KindFeed, FeedID: 1, LivestockID: 9, Quantity: -4},
			want: ErrInvalidQuantity,
		},
		{
			name: "missing livestock reference",
			cand: SubmitCandidate{Kind: models.KindFeed, FeedID: 1, Quantity: 1},
			want: ErrMissingLivestockReference,
		},
		{
			name: "stock item does not exist",
			cand: SubmitCandidate{Kind: models.KindFeed, FeedID: 42, LivestockID: 9, Quantity: 1},
			want: ErrStockItemNotFound,
		},
		{
			name: "quantity exceeds stock",
			cand: SubmitCandidate{Kind: models.KindFeed, FeedID: 1, LivestockID: 9, Quantity: 11},
			want: ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coord, stocks, _ := newTestCoordinator(feedItem(1, 10))
			_, err := coord.SubmitRequest(context.Background(), tt.cand)
			if !errors.Is(err, tt.want) {
				t.Fatalf("SubmitRequest error = %v, want %v", err, tt.want)
			}
			if got := stocks.quantity(models.KindFeed, 1); got != 10 {
				t.Errorf("stock quantity changed to %d on failed submit", got)
			}
		})
	}
}

func TestSubmitRequestPersistsPendingWithoutDebit(t *testing.T) {
	coord, stocks, _ := newTestCoordinator(feedItem(1, 10))

	req, err := coord.SubmitRequest(context.Background(), feedCandidate(1, 7))
	if err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}
	if req.RequestID == 0 {
		t.Error("expected an assigned request id")
	}
	if req.Status != models.StatusPending {
		t.Errorf("status = %s, want %s", req.Status, models.StatusPending)
	}
	if req.RequestDate.IsZero() {
		t.Error("expected a request date to be set")
	}
	// Submission reserves nothing.
	if got := stocks.quantity(models.KindFeed, 1); got != 10 {
		t.Errorf("stock quantity = %d after submit, want 10", got)
	}
}

// The scenario from the protocol definition: two accepted submissions against
// quantity 10, first approval debits, second fails its re-check.
func TestApprovalRevalidatesStock(t *testing.T) {
	coord, stocks, _ := newTestCoordinator(feedItem(1, 10))
	ctx := context.Background()

	reqA, err := coord.SubmitRequest(ctx, feedCandidate(1, 7))
	if err != nil {
		t.Fatalf("submit A: %v", err)
	}
	reqB, err := coord.SubmitRequest(ctx, feedCandidate(1, 5))
	if err != nil {
		t.Fatalf("submit B: %v", err)
	}

	approved, err := coord.ApproveRequest(ctx, reqA.RequestID, testSupplierID)
	if err != nil {
		t.Fatalf("approve A: %v", err)
	}
	if approved.Status != models.StatusApproved {
		t.Errorf("A status = %s, want Approved", approved.Status)
	}
	if got := stocks.quantity(models.KindFeed, 1); got != 3 {
		t.Errorf("stock after approving A = %d, want 3", got)
	}

	_, err = coord.ApproveRequest(ctx, reqB.RequestID, testSupplierID)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("approve B error = %v, want ErrInsufficientStock", err)
	}
	b, _ := coord.requests.Get(ctx, reqB.RequestID)
	if b.Status != models.StatusPending {
		t.Errorf("B status = %s, want Pending after failed approval", b.Status)
	}
	if got := stocks.quantity(models.KindFeed, 1); got != 3 {
		t.Errorf("stock after failed approval = %d, want 3", got)
	}

	reporter := NewReporter(coord.stocks, coord.requests)
	total, err := reporter.TotalSold(ctx, models.KindFeed, 1)
	if err != nil {
		t.Fatalf("TotalSold: %v", err)
	}
	if total != 7 {
		t.Errorf("TotalSold = %d, want 7", total)
	}
}

func TestFinalizedRequestsAreTerminal(t *testing.T) {
	coord, stocks, _ := newTestCoordinator(feedItem(1, 10))
	ctx := context.Background()

	req, err := coord.SubmitRequest(ctx, feedCandidate(1, 2))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := coord.RejectRequest(ctx, req.RequestID, testSupplierID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// Approving a rejected request must fail and leave it rejected.
	if _, err := coord.ApproveRequest(ctx, req.RequestID, testSupplierID); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("approve after reject error = %v, want ErrAlreadyFinalized", err)
	}
	got, _ := coord.requests.Get(ctx, req.RequestID)
	if got.Status != models.StatusRejected {
		t.Errorf("status = %s, want Rejected", got.Status)
	}
	if qty := stocks.quantity(models.KindFeed, 1); qty != 10 {
		t.Errorf("stock quantity = %d, want 10", qty)
	}

	// Same for a second rejection.
	if _, err := coord.RejectRequest(ctx, req.RequestID, testSupplierID); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("second reject error = %v, want ErrAlreadyFinalized", err)
	}
}

func TestRejectIsSideEffectFree(t *testing.T) {
	coord, stocks, _ := newTestCoordinator(feedItem(1, 10))
	ctx := context.Background()

	// A request for the whole stock: rejecting it must not touch quantity.
	req, err := coord.SubmitRequest(ctx, feedCandidate(1, 10))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	rejected, err := coord.RejectRequest(ctx, req.RequestID, testSupplierID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.StatusRejected {
		t.Errorf("status = %s, want Rejected", rejected.Status)
	}
	if got := stocks.quantity(models.KindFeed, 1); got != 10 {
		t.Errorf("stock quantity = %d after reject, want 10", got)
	}
}

func TestApproveUnknownRequest(t *testing.T) {
	coord, _, _ := newTestCoordinator(feedItem(1, 10))
	if _, err := coord.ApproveRequest(context.Background(), 404, testSupplierID); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("error = %v, want ErrRequestNotFound", err)
	}
}

func TestApproveChecksOwnership(t *testing.T) {
	coord, stocks, _ := newTestCoordinator(feedItem(1, 10))
	ctx := context.Background()

	req, err := coord.SubmitRequest(ctx, feedCandidate(1, 3))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := coord.ApproveRequest(ctx, req.RequestID, testSupplierID+1); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("error = %v, want ErrPermissionDenied", err)
	}
	got, _ := coord.requests.Get(ctx, req.RequestID)
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want Pending", got.Status)
	}
	if qty := stocks.quantity(models.KindFeed, 1); qty != 10 {
		t.Errorf("stock quantity = %d, want 10", qty)
	}
}

func TestApproveAfterStockItemDeleted(t *testing.T) {
	coord, stocks, _ := newTestCoordinator(feedItem(1, 10))
	ctx := context.Background()

	req, err := coord.SubmitRequest(ctx, feedCandidate(1, 3))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	stocks.remove(models.KindFeed, 1)

	// The request is not auto-rejected; the failure is surfaced and the
	// request stays pending for the supplier to resolve.
	if _, err := coord.ApproveRequest(ctx, req.RequestID, testSupplierID); !errors.Is(err, ErrStockItemNotFound) {
		t.Fatalf("error = %v, want ErrStockItemNotFound", err)
	}
	got, _ := coord.requests.Get(ctx, req.RequestID)
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want Pending", got.Status)
	}
}

func TestApproveRollsBackDebitWhenStatusFlipFails(t *testing.T) {
	coord, stocks, requests := newTestCoordinator(feedItem(1, 10))
	ctx := context.Background()

	req, err := coord.SubmitRequest(ctx, feedCandidate(1, 4))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	ledgerErr := errors.New("ledger write failed")
	requests.statusUpdateErr = ledgerErr
	if _, err := coord.ApproveRequest(ctx, req.RequestID, testSupplierID); !errors.Is(err, ledgerErr) {
		t.Fatalf("error = %v, want %v", err, ledgerErr)
	}

	// The debit must have been compensated and the request left pending.
	if got := stocks.quantity(models.KindFeed, 1); got != 10 {
		t.Errorf("stock quantity = %d after rollback, want 10", got)
	}
	got, _ := requests.Get(ctx, req.RequestID)
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want Pending", got.Status)
	}

	// The operation is retryable once the ledger recovers.
	approved, err := coord.ApproveRequest(ctx, req.RequestID, testSupplierID)
	if err != nil {
		t.Fatalf("retry approve: %v", err)
	}
	if approved.Status != models.StatusApproved {
		t.Errorf("status = %s, want Approved", approved.Status)
	}
	if got := stocks.quantity(models.KindFeed, 1); got != 6 {
		t.Errorf("stock quantity = %d, want 6", got)
	}
}

// stingyStockStore reports plenty of stock but refuses every conditional
// decrement, simulating an external writer that always wins the race.
type stingyStockStore struct {
	*memStockStore
}

func (s *stingyStockStore) DecrementQuantity(context.Context, models.Kind, int64, int64) (*models.StockItem, error) {
	return nil, ErrInsufficientStock
}

func TestApproveSurfacesConcurrentModificationWhenRetriesExhaust(t *testing.T) {
	stocks := &stingyStockStore{newMemStockStore(feedItem(1, 10))}
	requests := newMemRequestStore()
	coord := NewCoordinator(stocks, requests)
	ctx := context.Background()

	req, err := coord.SubmitRequest(ctx, feedCandidate(1, 3))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := coord.ApproveRequest(ctx, req.RequestID, testSupplierID); !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("error = %v, want ErrConcurrentModification", err)
	}
	got, _ := requests.Get(ctx, req.RequestID)
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want Pending", got.Status)
	}
}

func TestConcurrentDoubleApproveDebitsOnce(t *testing.T) {
	coord, stocks, _ := newTestCoordinator(feedItem(1, 10))
	ctx := context.Background()

	req, err := coord.SubmitRequest(ctx, feedCandidate(1, 4))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = coord.ApproveRequest(ctx, req.RequestID, testSupplierID)
		}(i)
	}
	wg.Wait()

	var succeeded, finalized int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyFinalized):
			finalized++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || finalized != 1 {
		t.Errorf("got %d successes and %d AlreadyFinalized, want exactly 1 of each", succeeded, finalized)
	}
	if got := stocks.quantity(models.KindFeed, 1); got != 6 {
		t.Errorf("stock quantity = %d, want 6 (debited exactly once)", got)
	}
}

func TestConcurrentApprovalsNeverOversell(t *testing.T) {
	const (
		initial    = int64(50)
		perRequest = int64(7)
		requests   = 20
	)
	coord, stocks, _ := newTestCoordinator(feedItem(1, initial))
	ctx := context.Background()

	ids := make([]int64, 0, requests)
	for i := 0; i < requests; i++ {
		req, err := coord.SubmitRequest(ctx, feedCandidate(1, perRequest))
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		ids = append(ids, req.RequestID)
	}

	var wg sync.WaitGroup
	errs := make([]error, requests)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = coord.ApproveRequest(ctx, id, testSupplierID)
		}(i, id)
	}
	wg.Wait()

	var approvedQty int64
	for i, err := range errs {
		switch {
		case err == nil:
			approvedQty += perRequest
		case errors.Is(err, ErrInsufficientStock):
			// Expected once the item drains.
		default:
			t.Errorf("approval %d: unexpected error %v", i, err)
		}
	}

	if approvedQty > initial {
		t.Fatalf("approved quantity %d exceeds the %d units that ever existed", approvedQty, initial)
	}
	if got := stocks.quantity(models.KindFeed, 1); got != initial-approvedQty {
		t.Errorf("stock quantity = %d, want %d", got, initial-approvedQty)
	}

	reporter := NewReporter(coord.stocks, coord.requests)
	total, err := reporter.TotalSold(ctx, models.KindFeed, 1)
	if err != nil {
		t.Fatalf("TotalSold: %v", err)
	}
	if total != approvedQty {
		t.Errorf("TotalSold = %d, want %d", total, approvedQty)
	}
}
