package entity

import "time"

// Product is one sellable item of a store. Prices are integer rupiah.
// Stock is mutated exclusively through the stock ledger (see
// application/inventory); product update endpoints never touch it.
type Product struct {
	ID            string
	StoreID       string
	Name          string
	Code          string // store-unique short code / barcode
	CategoryID    *string
	Unit          string // pcs, kg, botol, ...
	PurchasePrice int64
	SalePrice     int64
	Stock         int
	MinStock      int // low-stock alert threshold
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock reports whether the product is at or below its alert threshold.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
