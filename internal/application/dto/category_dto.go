package dto

import (
	"time"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

// CategoryRequest is the create/update body for /api/kategori.
type CategoryRequest struct {
	Nama string `json:"nama"`
}

// Validate checks shape.
func (r *CategoryRequest) Validate() error {
	if r.Nama == "" {
		return domain.NewValidationError("nama kategori wajib diisi")
	}
	return nil
}

// CategoryResponse is a category on the wire.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Nama      string    `json:"nama"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCategoryResponse maps a category entity onto the wire shape.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Nama: c.Name, CreatedAt: c.CreatedAt}
}
