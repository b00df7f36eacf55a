package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

// CustomerUseCase manages the customer book.
type CustomerUseCase struct {
	customers repository.CustomerRepository
}

// NewCustomerUseCase wires the customer use case.
func NewCustomerUseCase(customers repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers}
}

// Create adds a customer.
func (uc *CustomerUseCase) Create(ctx context.Context, storeID string, req *dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &entity.Customer{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		Name:      req.Nama,
		Phone:     req.Telp,
		Address:   req.Alamat,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	resp := dto.NewCustomerResponse(c)
	return &resp, nil
}

// List searches customers by name or phone.
func (uc *CustomerUseCase) List(ctx context.Context, storeID, search string, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.customers.List(ctx, storeID, search, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCustomerResponse(c))
	}
	return out, nil
}

// Update rewrites a customer's contact fields.
func (uc *CustomerUseCase) Update(ctx context.Context, storeID, id string, req *dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := uc.customers.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = req.Nama
	c.Phone = req.Telp
	c.Address = req.Alamat
	if err := uc.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	resp := dto.NewCustomerResponse(c)
	return &resp, nil
}

// Delete soft-deletes the customer; past transactions keep the reference.
func (uc *CustomerUseCase) Delete(ctx context.Context, storeID, id string) error {
	c, err := uc.customers.GetByID(ctx, storeID, id)
	if err != nil {
		return fmt.Errorf("load customer: %w", err)
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.customers.SoftDelete(ctx, storeID, id)
}
