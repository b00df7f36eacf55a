package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
	"github.com/iknmuh/mypos/pkg/logger"
)

const productListTTL = 60 * time.Second

// ProductUseCase manages the catalog. The create path records the opening
// balance directly; every later stock change goes through the ledger.
type ProductUseCase struct {
	products repository.ProductRepository
	audit    repository.AuditLogRepository
	cache    Cache
	log      *logger.Logger
}

// NewProductUseCase wires the catalog use case.
func NewProductUseCase(products repository.ProductRepository, audit repository.AuditLogRepository, cache Cache, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, audit: audit, cache: cache, log: log}
}

// Create adds a product. The code must be unique within the store.
func (uc *ProductUseCase) Create(ctx context.Context, storeID, userID string, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := uc.products.GetByCode(ctx, storeID, req.Kode)
	if err != nil {
		return nil, fmt.Errorf("check code: %w", err)
	}
	if existing != nil {
		return nil, domain.NewValidationError("kode produk %s sudah dipakai", req.Kode)
	}

	now := time.Now()
	p := &entity.Product{
		ID:            uuid.NewString(),
		StoreID:       storeID,
		Name:          req.Nama,
		Code:          req.Kode,
		CategoryID:    req.KategoriID,
		Unit:          req.Satuan,
		PurchasePrice: req.HargaBeli,
		SalePrice:     req.HargaJual,
		Stock:         req.Stok,
		MinStock:      req.StokMinimal,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	uc.writeAudit(ctx, storeID, userID, entity.AuditCreate, p.ID, req)
	uc.cache.InvalidateProducts(ctx, storeID)
	uc.cache.InvalidateDashboard(ctx, storeID)

	uc.log.Info().Str("store_id", storeID).Str("product_id", p.ID).Str("code", p.Code).Msg("product created")

	resp := dto.NewProductResponse(p)
	return &resp, nil
}

// Get loads one product.
func (uc *ProductUseCase) Get(ctx context.Context, storeID, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewProductResponse(p)
	return &resp, nil
}

// List pages through active products, cached briefly because the cashier
// screen polls it.
func (uc *ProductUseCase) List(ctx context.Context, storeID string, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()

	key := fmt.Sprintf("produk:%s:list:%s:%s:%d:%d", storeID, q.Search, q.KategoriID, q.Limit, q.Page)
	var cached dto.ProductListResponse
	if uc.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	list, total, err := uc.products.List(ctx, storeID, repository.ProductFilter{
		Search:     q.Search,
		CategoryID: q.KategoriID,
		Limit:      q.Limit,
		Offset:     q.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	resp := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(list)),
		PageResponse: dto.PageResponse{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: (total + q.Limit - 1) / q.Limit,
		},
	}
	for _, p := range list {
		resp.Items = append(resp.Items, dto.NewProductResponse(p))
	}

	uc.cache.SetJSON(ctx, key, resp, productListTTL)
	return resp, nil
}

// ListLowStock returns products at or below their minimum stock.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, storeID string) ([]dto.ProductResponse, error) {
	list, err := uc.products.ListLowStock(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductResponse(p))
	}
	return out, nil
}

// Update rewrites the product's descriptive fields. Stock is untouched.
func (uc *ProductUseCase) Update(ctx context.Context, storeID, userID, id string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := uc.products.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if req.Kode != p.Code {
		other, err := uc.products.GetByCode(ctx, storeID, req.Kode)
		if err != nil {
			return nil, fmt.Errorf("check code: %w", err)
		}
		if other != nil && other.ID != p.ID {
			return nil, domain.NewValidationError("kode produk %s sudah dipakai", req.Kode)
		}
	}

	p.Name = req.Nama
	p.Code = req.Kode
	p.CategoryID = req.KategoriID
	p.Unit = req.Satuan
	p.PurchasePrice = req.HargaBeli
	p.SalePrice = req.HargaJual
	p.MinStock = req.StokMinimal
	p.UpdatedAt = time.Now()

	if err := uc.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	uc.writeAudit(ctx, storeID, userID, entity.AuditUpdate, p.ID, req)
	uc.cache.InvalidateProducts(ctx, storeID)

	resp := dto.NewProductResponse(p)
	return &resp, nil
}

// Delete soft-deletes the product. Past transactions keep their item rows;
// a later void simply skips the restore for this product.
func (uc *ProductUseCase) Delete(ctx context.Context, storeID, userID, id string) error {
	p, err := uc.products.GetByID(ctx, storeID, id)
	if err != nil {
		return fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return domain.ErrNotFound
	}

	if err := uc.products.SoftDelete(ctx, storeID, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	uc.writeAudit(ctx, storeID, userID, entity.AuditDelete, id, nil)
	uc.cache.InvalidateProducts(ctx, storeID)
	uc.cache.InvalidateDashboard(ctx, storeID)

	uc.log.Info().Str("store_id", storeID).Str("product_id", id).Msg("product deleted")
	return nil
}

func (uc *ProductUseCase) writeAudit(ctx context.Context, storeID, userID, action, recordID string, payload any) {
	var body json.RawMessage
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	err := uc.audit.Create(ctx, &entity.AuditLog{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		UserID:    userID,
		Action:    action,
		TableName: "produk",
		RecordID:  recordID,
		NewValues: body,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("record_id", recordID).Msg("audit write failed")
	}
}
