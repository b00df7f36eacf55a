package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

// QueryUseCase serves transaction reads.
type QueryUseCase struct {
	transactions repository.TransactionRepository
}

// NewQueryUseCase wires the read side.
func NewQueryUseCase(transactions repository.TransactionRepository) *QueryUseCase {
	return &QueryUseCase{transactions: transactions}
}

// Get loads one transaction with its line items.
func (uc *QueryUseCase) Get(ctx context.Context, storeID, id string) (*dto.SaleDetailResponse, error) {
	t, err := uc.transactions.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.transactions.GetItems(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	t.Items = items

	resp := dto.NewSaleDetailResponse(t)
	return &resp, nil
}

// List pages through transactions, newest first. Items are not loaded here;
// the detail endpoint does that.
func (uc *QueryUseCase) List(ctx context.Context, storeID string, q dto.SaleListQuery) (*dto.SaleListResponse, error) {
	q.DefaultPage()

	filter := repository.TransactionFilter{
		Status: q.Status,
		Limit:  q.Limit,
		Offset: q.Offset(),
	}
	if q.From != "" {
		from, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return nil, domain.NewValidationError("tanggal from tidak valid: %s", q.From)
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return nil, domain.NewValidationError("tanggal to tidak valid: %s", q.To)
		}
		// Inclusive end of day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}

	list, total, err := uc.transactions.List(ctx, storeID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	resp := &dto.SaleListResponse{
		Items: make([]dto.SaleDetailResponse, 0, len(list)),
		PageResponse: dto.PageResponse{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: (total + q.Limit - 1) / q.Limit,
		},
	}
	for _, t := range list {
		resp.Items = append(resp.Items, dto.NewSaleDetailResponse(t))
	}
	return resp, nil
}
