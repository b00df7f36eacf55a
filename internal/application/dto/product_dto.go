package dto

import (
	"time"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

// CreateProductRequest is the POST /api/produk body. stok here is the opening
// stock; after creation the field is owned by the ledger.
type CreateProductRequest struct {
	Nama        string  `json:"nama"`
	Kode        string  `json:"kode"`
	KategoriID  *string `json:"kategori_id"`
	Satuan      string  `json:"satuan"`
	HargaBeli   int64   `json:"harga_beli"`
	HargaJual   int64   `json:"harga_jual"`
	Stok        int     `json:"stok"`
	StokMinimal int     `json:"stok_minimal"`
}

// Validate checks shape and sign constraints.
func (r *CreateProductRequest) Validate() error {
	if r.Nama == "" {
		return domain.NewValidationError("nama produk wajib diisi")
	}
	if r.Kode == "" {
		return domain.NewValidationError("kode produk wajib diisi")
	}
	if r.HargaBeli < 0 || r.HargaJual < 0 {
		return domain.NewValidationError("harga tidak boleh negatif")
	}
	if r.Stok < 0 || r.StokMinimal < 0 {
		return domain.NewValidationError("stok tidak boleh negatif")
	}
	return nil
}

// UpdateProductRequest is the PUT /api/produk/:id body. Stock is deliberately
// absent: only the ledger mutates it.
type UpdateProductRequest struct {
	Nama        string  `json:"nama"`
	Kode        string  `json:"kode"`
	KategoriID  *string `json:"kategori_id"`
	Satuan      string  `json:"satuan"`
	HargaBeli   int64   `json:"harga_beli"`
	HargaJual   int64   `json:"harga_jual"`
	StokMinimal int     `json:"stok_minimal"`
}

// Validate checks shape and sign constraints.
func (r *UpdateProductRequest) Validate() error {
	if r.Nama == "" {
		return domain.NewValidationError("nama produk wajib diisi")
	}
	if r.Kode == "" {
		return domain.NewValidationError("kode produk wajib diisi")
	}
	if r.HargaBeli < 0 || r.HargaJual < 0 {
		return domain.NewValidationError("harga tidak boleh negatif")
	}
	if r.StokMinimal < 0 {
		return domain.NewValidationError("stok minimal tidak boleh negatif")
	}
	return nil
}

// ProductResponse is a product on the wire.
type ProductResponse struct {
	ID          string    `json:"id"`
	Nama        string    `json:"nama"`
	Kode        string    `json:"kode"`
	KategoriID  *string   `json:"kategori_id"`
	Satuan      string    `json:"satuan"`
	HargaBeli   int64     `json:"harga_beli"`
	HargaJual   int64     `json:"harga_jual"`
	Stok        int       `json:"stok"`
	StokMinimal int       `json:"stok_minimal"`
	Aktif       bool      `json:"aktif"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListQuery filters GET /api/produk.
type ProductListQuery struct {
	Search     string `query:"search"`
	KategoriID string `query:"kategori_id"`
	PageRequest
}

// ProductListResponse is a page of products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	PageResponse
}

// NewProductResponse maps a product entity onto the wire shape.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Nama:        p.Name,
		Kode:        p.Code,
		KategoriID:  p.CategoryID,
		Satuan:      p.Unit,
		HargaBeli:   p.PurchasePrice,
		HargaJual:   p.SalePrice,
		Stok:        p.Stock,
		StokMinimal: p.MinStock,
		Aktif:       p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
