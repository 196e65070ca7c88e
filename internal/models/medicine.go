package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medicine matches the document in the "medicines" collection.
type Medicine struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	MedicineID   int64              `bson:"medicineID" json:"medicineID"`
	MedicineName string             `bson:"medicineName" json:"medicineName"`
	Brand        string             `bson:"brand" json:"brand"`
	Category     string             `bson:"category" json:"category"`
	Description  string             `bson:"description" json:"description"`
	Quantity     int64              `bson:"quantity" json:"quantity"`
	Unit         string             `bson:"unit" json:"unit"`
	PricePerUnit float64            `bson:"pricePerUnit" json:"pricePerUnit"`
	Image        string             `bson:"image,omitempty" json:"image"`
	SupplierID   int64              `bson:"supplierID" json:"supplierID"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StockItem converts the medicine document into the engine's uniform view.
func (m *Medicine) StockItem() *StockItem {
	return &StockItem{
		Kind:         KindMedicine,
		ID:           m.MedicineID,
		Name:         m.MedicineName,
		Category:     m.Category,
		Description:  m.Description,
		Unit:         m.Unit,
		PricePerUnit: m.PricePerUnit,
		Quantity:     m.Quantity,
		SupplierID:   m.SupplierID,
	}
}
