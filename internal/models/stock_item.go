package models

// Kind discriminates the two stock namespaces. Medicines and feeds live in
// separate collections with independent id sequences, so a stock item is only
// identified by the (kind, id) pair.
type Kind string

const (
	KindMedicine Kind = "Medicine"
	KindFeed     Kind = "Feed"
)

func (k Kind) Valid() bool {
	return k == KindMedicine || k == KindFeed
}

// StockItem is the engine's uniform view of one sellable unit type,
// regardless of whether it is backed by a medicine or a feed document.
type StockItem struct {
	Kind         Kind    `json:"kind"`
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Quantity     int64   `json:"quantity"`
	SupplierID   int64   `json:"supplierID"`
}
