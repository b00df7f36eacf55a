package dto

import (
	"time"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

// PurchaseItemRequest is one supplier-order line.
type PurchaseItemRequest struct {
	ProdukID string `json:"produk_id"`
	Nama     string `json:"nama"`
	Harga    int64  `json:"harga"`
	Jumlah   int    `json:"jumlah"`
}

// CreatePurchaseRequest is the POST /api/pembelian body.
type CreatePurchaseRequest struct {
	Supplier string                `json:"supplier"`
	Catatan  string                `json:"catatan"`
	Items    []PurchaseItemRequest `json:"items"`
}

// Validate checks shape and sign constraints.
func (r *CreatePurchaseRequest) Validate() error {
	if r.Supplier == "" {
		return domain.NewValidationError("supplier wajib diisi")
	}
	if len(r.Items) == 0 {
		return domain.NewValidationError("daftar barang tidak boleh kosong")
	}
	for i, item := range r.Items {
		if item.ProdukID == "" {
			return domain.NewValidationError("item %d: produk_id wajib diisi", i+1)
		}
		if item.Jumlah <= 0 {
			return domain.NewValidationError("item %d: jumlah harus lebih dari 0", i+1)
		}
		if item.Harga < 0 {
			return domain.NewValidationError("item %d: harga tidak boleh negatif", i+1)
		}
	}
	return nil
}

// PurchaseItemResponse is one persisted order line.
type PurchaseItemResponse struct {
	ID       string `json:"id"`
	ProdukID string `json:"produk_id"`
	Nama     string `json:"nama"`
	Harga    int64  `json:"harga"`
	Jumlah   int    `json:"jumlah"`
	Subtotal int64  `json:"subtotal"`
}

// PurchaseResponse is a purchase with its nested items.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	Nomor      string                 `json:"nomor"`
	Supplier   string                 `json:"supplier"`
	Status     string                 `json:"status"`
	Total      int64                  `json:"total"`
	Catatan    string                 `json:"catatan"`
	ReceivedAt *time.Time             `json:"received_at,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	Items      []PurchaseItemResponse `json:"items"`
}

// PurchaseListQuery filters GET /api/pembelian.
type PurchaseListQuery struct {
	Status string `query:"status"`
	PageRequest
}

// PurchaseListResponse is a page of purchases.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	PageResponse
}

// NewPurchaseResponse maps a purchase entity onto the wire shape.
func NewPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:         p.ID,
		Nomor:      p.Number,
		Supplier:   p.Supplier,
		Status:     p.Status,
		Total:      p.Total,
		Catatan:    p.Note,
		ReceivedAt: p.ReceivedAt,
		CreatedAt:  p.CreatedAt,
		Items:      make([]PurchaseItemResponse, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, PurchaseItemResponse{
			ID:       it.ID,
			ProdukID: it.ProductID,
			Nama:     it.ProductName,
			Harga:    it.UnitCost,
			Jumlah:   it.Quantity,
			Subtotal: it.Subtotal,
		})
	}
	return resp
}
