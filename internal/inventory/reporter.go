package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"livestock-supply-api-server/internal/models"
)

// Reporter derives sales figures by folding the approved subset of the
// request ledger. Totals are recomputed on every call rather than kept as a
// running counter, so there is no second number to keep consistent with the
// ledger. Reads may run concurrently with approvals and can be stale by one
// in-flight approval.
type Reporter struct {
	stocks   StockStore
	requests RequestStore
}

func NewReporter(stocks StockStore, requests RequestStore) *Reporter {
	return &Reporter{stocks: stocks, requests: requests}
}

// SalesSummary is the per-item sales report.
type SalesSummary struct {
	Kind        models.Kind     `json:"kind"`
	StockItemID int64           `json:"stockItemID"`
	UnitsSold   int64           `json:"unitsSold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// TotalSold sums the requested quantity over all Approved requests for the
// given stock item. An item with no approved requests totals 0; that is not
// an error.
func (r *Reporter) TotalSold(ctx context.Context, kind models.Kind, stockItemID int64) (int64, error) {
	approved, err := r.requests.ListByStockItem(ctx, kind, stockItemID, models.StatusApproved)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, req := range approved {
		total += req.Quantity
	}
	return total, nil
}

// Summarize reports units sold and the revenue at the item's current price
// per unit. Money math goes through decimal so repeated float multiplication
// cannot drift the figure.
func (r *Reporter) Summarize(ctx context.Context, kind models.Kind, stockItemID int64) (*SalesSummary, error) {
	item, err := r.stocks.Get(ctx, kind, stockItemID)
	if err != nil {
		return nil, err
	}
	units, err := r.TotalSold(ctx, kind, stockItemID)
	if err != nil {
		return nil, err
	}
	revenue := decimal.NewFromFloat(item.PricePerUnit).Mul(decimal.NewFromInt(units))
	return &SalesSummary{
		Kind:        kind,
		StockItemID: stockItemID,
		UnitsSold:   units,
		Revenue:     revenue,
	}, nil
}
