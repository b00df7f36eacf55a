package dto

import (
	"time"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

// StockAdjustmentRequest is the POST /api/stok body.
type StockAdjustmentRequest struct {
	ProdukID string `json:"produk_id"`
	Tipe     string `json:"tipe"` // masuk, keluar, koreksi
	Jumlah   int    `json:"jumlah"`
	Catatan  string `json:"catatan"`
}

// Validate checks shape; stock sufficiency is decided by the ledger itself.
func (r *StockAdjustmentRequest) Validate() error {
	if r.ProdukID == "" {
		return domain.NewValidationError("produk_id wajib diisi")
	}
	switch r.Tipe {
	case entity.MovementIn, entity.MovementOut:
		if r.Jumlah <= 0 {
			return domain.NewValidationError("jumlah harus lebih dari 0")
		}
	case entity.MovementCorrection:
		if r.Jumlah < 0 {
			return domain.NewValidationError("stok koreksi tidak boleh negatif")
		}
	default:
		return domain.NewValidationError("tipe penyesuaian tidak valid: %s", r.Tipe)
	}
	return nil
}

// StockAdjustmentResponse is the persisted adjustment record.
type StockAdjustmentResponse struct {
	ID        string    `json:"id"`
	ProdukID  string    `json:"produk_id"`
	Tipe      string    `json:"tipe"`
	Jumlah    int       `json:"jumlah"`
	StokAwal  int       `json:"stok_awal"`
	StokAkhir int       `json:"stok_akhir"`
	Catatan   string    `json:"catatan"`
	CreatedAt time.Time `json:"created_at"`
}

// StockMovementResponse is one ledger entry in GET /api/stok.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProdukID  string    `json:"produk_id"`
	Tipe      string    `json:"tipe"`
	Jumlah    int       `json:"jumlah"`
	StokAkhir int       `json:"stok_akhir"`
	Referensi string    `json:"referensi,omitempty"`
	Catatan   string    `json:"catatan"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStockMovementResponse maps a ledger entry onto the wire shape.
func NewStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:        m.ID,
		ProdukID:  m.ProductID,
		Tipe:      m.Kind,
		Jumlah:    m.Quantity,
		StokAkhir: m.ResultingStock,
		Referensi: m.Reference,
		Catatan:   m.Note,
		CreatedAt: m.CreatedAt,
	}
}
