package dto

import (
	"time"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

const maxItemsPerSale = 100

// SaleItemRequest is one cart line as the cashier screen sends it.
// Field names follow the wire format of the MyPOS UI.
type SaleItemRequest struct {
	ProdukID string `json:"produk_id"`
	Nama     string `json:"nama"`
	Harga    int64  `json:"harga"`
	Jumlah   int    `json:"jumlah"`
	Diskon   int64  `json:"diskon"`
	Subtotal int64  `json:"subtotal"`
}

// CreateSaleRequest is the POST /api/transaksi body.
type CreateSaleRequest struct {
	Items       []SaleItemRequest `json:"items"`
	PelangganID *string           `json:"pelanggan_id"`
	Pelanggan   string            `json:"pelanggan"`
	Total       int64             `json:"total"`
	Diskon      int64             `json:"diskon"`
	Pajak       int64             `json:"pajak"`
	GrandTotal  int64             `json:"grand_total"`
	Bayar       int64             `json:"bayar"`
	Kembalian   int64             `json:"kembalian"`
	Metode      string            `json:"metode"`
	Catatan     string            `json:"catatan"`

	// Optional, from the X-Idempotency-Key header; never part of the body.
	IdempotencyKey string `json:"-"`
}

// Validate re-asserts every arithmetic invariant of the cart. The boundary
// validates too, but the sale processor does not trust it blindly.
func (r *CreateSaleRequest) Validate() error {
	if len(r.Items) == 0 {
		return domain.NewValidationError("keranjang tidak boleh kosong")
	}
	if len(r.Items) > maxItemsPerSale {
		return domain.NewValidationError("maksimal %d item per transaksi", maxItemsPerSale)
	}
	if r.Metode == "" {
		r.Metode = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(r.Metode) {
		return domain.NewValidationError("metode pembayaran tidak valid: %s", r.Metode)
	}
	if r.Diskon < 0 || r.Pajak < 0 || r.Bayar < 0 || r.Kembalian < 0 {
		return domain.NewValidationError("nilai pembayaran tidak boleh negatif")
	}

	var sum int64
	for i, item := range r.Items {
		if item.ProdukID == "" {
			return domain.NewValidationError("item %d: produk_id wajib diisi", i+1)
		}
		if item.Jumlah <= 0 {
			return domain.NewValidationError("item %d: jumlah harus lebih dari 0", i+1)
		}
		if item.Harga < 0 || item.Diskon < 0 {
			return domain.NewValidationError("item %d: harga dan diskon tidak boleh negatif", i+1)
		}
		if expected := item.Harga*int64(item.Jumlah) - item.Diskon; item.Subtotal != expected {
			return domain.NewValidationError("item %d: subtotal tidak sesuai (seharusnya %d)", i+1, expected)
		}
		sum += item.Subtotal
	}
	if sum != r.Total {
		return domain.NewValidationError("total tidak sesuai dengan jumlah subtotal item")
	}
	if r.GrandTotal != r.Total-r.Diskon+r.Pajak {
		return domain.NewValidationError("grand_total tidak sesuai (total - diskon + pajak)")
	}
	if r.GrandTotal < 0 {
		return domain.NewValidationError("grand_total tidak boleh negatif")
	}
	if r.Metode == entity.PaymentCash && r.Bayar < r.GrandTotal {
		return domain.NewValidationError("bayar kurang dari grand_total")
	}
	return nil
}

// SaleResponse is the POST /api/transaksi result.
type SaleResponse struct {
	ID         string `json:"id"`
	Nomor      string `json:"nomor"`
	TotalItems int    `json:"total_items"`

	// Duplicate marks an idempotency-key replay; the handler answers 200
	// instead of 201 and no new stock was charged.
	Duplicate bool `json:"-"`
}

// VoidSaleRequest is the PATCH /api/transaksi/:id body.
type VoidSaleRequest struct {
	Status string `json:"status"`
	Alasan string `json:"alasan"`
}

// VoidSaleResponse confirms the cancellation.
type VoidSaleResponse struct {
	ID     string `json:"id"`
	Nomor  string `json:"nomor"`
	Status string `json:"status"`
}

// SaleItemResponse is one persisted line item.
type SaleItemResponse struct {
	ID       string  `json:"id"`
	ProdukID *string `json:"produk_id"`
	Nama     string  `json:"nama"`
	Harga    int64   `json:"harga"`
	Jumlah   int     `json:"jumlah"`
	Diskon   int64   `json:"diskon"`
	Subtotal int64   `json:"subtotal"`
}

// SaleDetailResponse is a transaction with its nested items.
type SaleDetailResponse struct {
	ID          string             `json:"id"`
	Nomor       string             `json:"nomor"`
	PelangganID *string            `json:"pelanggan_id"`
	Pelanggan   string             `json:"pelanggan"`
	Total       int64              `json:"total"`
	Diskon      int64              `json:"diskon"`
	Pajak       int64              `json:"pajak"`
	GrandTotal  int64              `json:"grand_total"`
	Bayar       int64              `json:"bayar"`
	Kembalian   int64              `json:"kembalian"`
	Metode      string             `json:"metode"`
	Catatan     string             `json:"catatan"`
	Status      string             `json:"status"`
	AlasanBatal string             `json:"alasan_batal,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []SaleItemResponse `json:"items"`
}

// SaleListQuery filters GET /api/transaksi.
type SaleListQuery struct {
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`
	Status string `query:"status"`
	PageRequest
}

// SaleListResponse is a page of transactions.
type SaleListResponse struct {
	Items []SaleDetailResponse `json:"items"`
	PageResponse
}

// NewSaleDetailResponse maps a transaction entity onto the wire shape.
func NewSaleDetailResponse(t *entity.Transaction) SaleDetailResponse {
	resp := SaleDetailResponse{
		ID:          t.ID,
		Nomor:       t.InvoiceNumber,
		PelangganID: t.CustomerID,
		Pelanggan:   t.CustomerName,
		Total:       t.Subtotal,
		Diskon:      t.Discount,
		Pajak:       t.Tax,
		GrandTotal:  t.GrandTotal,
		Bayar:       t.AmountPaid,
		Kembalian:   t.Change,
		Metode:      t.PaymentMethod,
		Catatan:     t.Note,
		Status:      t.Status,
		AlasanBatal: t.VoidReason,
		CreatedAt:   t.CreatedAt,
		Items:       make([]SaleItemResponse, 0, len(t.Items)),
	}
	for _, it := range t.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:       it.ID,
			ProdukID: it.ProductID,
			Nama:     it.ProductName,
			Harga:    it.UnitPrice,
			Jumlah:   it.Quantity,
			Diskon:   it.Discount,
			Subtotal: it.Subtotal,
		})
	}
	return resp
}
