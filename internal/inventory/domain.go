package inventory

import (
	"errors"
	"time"
)

// MovementType enumerates supported stock movements.
type MovementType string

const (
	// MovementIn represents an inbound movement.
	MovementIn MovementType = "IN"
	// MovementOut represents an outbound movement.
	MovementOut MovementType = "OUT"
	// MovementAdjustment indicates manual adjustments; quantity may be negative.
	MovementAdjustment MovementType = "ADJUSTMENT"
	// MovementTransfer used for transfers between warehouses.
	MovementTransfer MovementType = "TRANSFER"
)

// BatchStatus enumerates batch quality states.
type BatchStatus string

const (
	// BatchOK marks a sellable batch.
	BatchOK BatchStatus = "OK"
	// BatchDefective marks a batch with quality issues.
	BatchDefective BatchStatus = "DEFECTIVE"
	// BatchBlocked marks a batch held back from picking.
	BatchBlocked BatchStatus = "BLOCKED"
	// BatchExpired marks a batch past its expiry date.
	BatchExpired BatchStatus = "EXPIRED"
)

// Product is the read model of a catalogue item as the analytics engine sees
// it. Stock and pricing fields mirror the warehouse master data; the engine
// never mutates them.
type Product struct {
	ID             int64
	Code           string
	Name           string
	CostPrice      float64
	SalePrice      *float64
	StockCurrent   float64
	StockMin       float64
	StockMax       *float64
	Warehouse      string
	Aisle          string
	Shelf          string
	Category       string
	IsActive       bool
	IsBatchTracked bool
}

// Value returns the stock valuation of the product, preferring sale price and
// falling back to cost. Products without any price valuate to zero.
func (p Product) Value() float64 {
	price := p.CostPrice
	if p.SalePrice != nil {
		price = *p.SalePrice
	}
	return p.StockCurrent * price
}

// Movement is a single stock movement record.
type Movement struct {
	ID           int64
	ProductID    int64
	BatchID      *int64
	UserID       *int64
	Type         MovementType
	Quantity     float64
	MovementDate time.Time
	Warehouse    string
	Reason       string
}

// Batch is the read model of a tracked production batch.
type Batch struct {
	ID                int64
	ProductID         int64
	SupplierID        *int64
	Status            BatchStatus
	QuantityTotal     float64
	QuantityAvailable float64
	QuantityReserved  float64
	QuantityDefective float64
	ExpiryDate        *time.Time
	QualityScore      float64
	UpdatedAt         time.Time
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Warehouse       string
	Category        string
	ProductID       int64
	IncludeInactive bool
}

// MovementFilter narrows movement listings.
type MovementFilter struct {
	From      time.Time
	To        time.Time
	Warehouse string
	ProductID int64
	UserID    int64
	Type      MovementType
}

// BatchFilter narrows batch listings.
type BatchFilter struct {
	ProductID int64
	Status    BatchStatus
}

// ErrUnavailable wraps data-store failures so callers can distinguish a failed
// fetch from a legitimately empty result set.
var ErrUnavailable = errors.New("inventory: data store unavailable")
