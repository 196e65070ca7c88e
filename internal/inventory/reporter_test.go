package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"livestock-supply-api-server/internal/models"
)

func TestTotalSoldWithNoRequestsIsZero(t *testing.T) {
	stocks := newMemStockStore(feedItem(1, 10))
	requests := newMemRequestStore()
	reporter := NewReporter(stocks, requests)

	total, err := reporter.TotalSold(context.Background(), models.KindFeed, 1)
	if err != nil {
		t.Fatalf("TotalSold: %v", err)
	}
	if total != 0 {
		t.Errorf("TotalSold = %d, want 0", total)
	}
}

func TestTotalSoldCountsOnlyApprovedForThatItem(t *testing.T) {
	medicine := &models.StockItem{Kind: models.KindMedicine, ID: 1, PricePerUnit: 12, Quantity: 100, SupplierID: testSupplierID}
	coord, _, _ := newTestCoordinator(feedItem(1, 100), medicine)
	ctx := context.Background()

	submit := func(cand SubmitCandidate) *models.Request {
		t.Helper()
		req, err := coord.SubmitRequest(ctx, cand)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		return req
	}

	approved := submit(feedCandidate(1, 7))
	rejected := submit(feedCandidate(1, 3))
	submit(feedCandidate(1, 2)) // stays pending

	// Same numeric id, different kind: must not leak into the feed total.
	medReq := submit(SubmitCandidate{Kind: models.KindMedicine, MedicineID: 1, RequesterID: 5, LivestockID: 9, Quantity: 4})

	if _, err := coord.ApproveRequest(ctx, approved.RequestID, testSupplierID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := coord.RejectRequest(ctx, rejected.RequestID, testSupplierID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := coord.ApproveRequest(ctx, medReq.RequestID, testSupplierID); err != nil {
		t.Fatalf("approve medicine: %v", err)
	}

	reporter := NewReporter(coord.stocks, coord.requests)
	total, err := reporter.TotalSold(ctx, models.KindFeed, 1)
	if err != nil {
		t.Fatalf("TotalSold: %v", err)
	}
	if total != 7 {
		t.Errorf("feed TotalSold = %d, want 7 (approved only)", total)
	}

	medTotal, err := reporter.TotalSold(ctx, models.KindMedicine, 1)
	if err != nil {
		t.Fatalf("TotalSold medicine: %v", err)
	}
	if medTotal != 4 {
		t.Errorf("medicine TotalSold = %d, want 4", medTotal)
	}
}

func TestSummarizeComputesRevenue(t *testing.T) {
	coord, _, _ := newTestCoordinator(feedItem(1, 10))
	ctx := context.Background()

	req, err := coord.SubmitRequest(ctx, feedCandidate(1, 7))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := coord.ApproveRequest(ctx, req.RequestID, testSupplierID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	reporter := NewReporter(coord.stocks, coord.requests)
	summary, err := reporter.Summarize(ctx, models.KindFeed, 1)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.UnitsSold != 7 {
		t.Errorf("UnitsSold = %d, want 7", summary.UnitsSold)
	}
	// 7 units at 2.5 per unit.
	if want := decimal.RequireFromString("17.5"); !summary.Revenue.Equal(want) {
		t.Errorf("Revenue = %s, want %s", summary.Revenue, want)
	}
}

func TestSummarizeUnknownItem(t *testing.T) {
	reporter := NewReporter(newMemStockStore(), newMemRequestStore())
	if _, err := reporter.Summarize(context.Background(), models.KindFeed, 99); !errors.Is(err, ErrStockItemNotFound) {
		t.Fatalf("error = %v, want ErrStockItemNotFound", err)
	}
}
