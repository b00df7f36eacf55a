package dto

import (
	"time"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

// CustomerRequest is the create/update body for /api/pelanggan.
type CustomerRequest struct {
	Nama   string `json:"nama"`
	Telp   string `json:"telp"`
	Alamat string `json:"alamat"`
}

// Validate checks shape.
func (r *CustomerRequest) Validate() error {
	if r.Nama == "" {
		return domain.NewValidationError("nama pelanggan wajib diisi")
	}
	return nil
}

// CustomerResponse is a customer on the wire.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Nama      string    `json:"nama"`
	Telp      string    `json:"telp"`
	Alamat    string    `json:"alamat"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCustomerResponse maps a customer entity onto the wire shape.
func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Nama:      c.Name,
		Telp:      c.Phone,
		Alamat:    c.Address,
		CreatedAt: c.CreatedAt,
	}
}
