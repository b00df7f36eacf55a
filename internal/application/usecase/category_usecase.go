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

// CategoryUseCase manages product categories.
type CategoryUseCase struct {
	categories repository.CategoryRepository
}

// NewCategoryUseCase wires the category use case.
func NewCategoryUseCase(categories repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories}
}

// Create adds a category.
func (uc *CategoryUseCase) Create(ctx context.Context, storeID string, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &entity.Category{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		Name:      req.Nama,
		CreatedAt: time.Now(),
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	resp := dto.NewCategoryResponse(c)
	return &resp, nil
}

// List returns all categories of the store.
func (uc *CategoryUseCase) List(ctx context.Context, storeID string) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCategoryResponse(c))
	}
	return out, nil
}

// Update renames a category.
func (uc *CategoryUseCase) Update(ctx context.Context, storeID, id string, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := uc.categories.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = req.Nama
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	resp := dto.NewCategoryResponse(c)
	return &resp, nil
}

// Delete removes a category. Products keep a dangling kategori_id of nil via
// the FK's ON DELETE SET NULL.
func (uc *CategoryUseCase) Delete(ctx context.Context, storeID, id string) error {
	c, err := uc.categories.GetByID(ctx, storeID, id)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.categories.Delete(ctx, storeID, id)
}
