package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, store_id, nomor, pelanggan_id, pelanggan, total, diskon, pajak, grand_total, bayar, kembalian, metode, catatan, status, alasan_batal, idempotency_key, created_at`

// TransactionRepo implements TransactionRepository over PostgreSQL (usable
// with pool or tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository builds the adapter. Pass pool or tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserts the invoice header. A collision on nomor or on the
// idempotency key surfaces as ErrDuplicate.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transaksi (id, store_id, nomor, pelanggan_id, pelanggan, total, diskon, pajak, grand_total, bayar, kembalian, metode, catatan, status, alasan_batal, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.StoreID, t.InvoiceNumber, t.CustomerID, t.CustomerName,
		t.Subtotal, t.Discount, t.Tax, t.GrandTotal, t.AmountPaid, t.Change,
		t.PaymentMethod, t.Note, t.Status, t.VoidReason, t.IdempotencyKey, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// CreateItem inserts one line item.
func (r *TransactionRepo) CreateItem(ctx context.Context, item *entity.TransactionItem) error {
	query := `
		INSERT INTO transaksi_item (id, transaksi_id, produk_id, nama, harga, jumlah, diskon, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.TransactionID, item.ProductID, item.ProductName,
		item.UnitPrice, item.Quantity, item.Discount, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create transaction item: %w", err)
	}
	return nil
}

// GetByID returns the header or (nil, nil) when absent for the store.
func (r *TransactionRepo) GetByID(ctx context.Context, storeID, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transaksi WHERE store_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, id))
}

// GetForUpdate loads the header and locks the row until the surrounding
// transaction ends.
func (r *TransactionRepo) GetForUpdate(ctx context.Context, storeID, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transaksi WHERE store_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, id))
}

// GetItems returns the line items of a transaction.
func (r *TransactionRepo) GetItems(ctx context.Context, transactionID string) ([]entity.TransactionItem, error) {
	query := `
		SELECT id, transaksi_id, produk_id, nama, harga, jumlah, diskon, subtotal
		FROM transaksi_item WHERE transaksi_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("get transaction items: %w", err)
	}
	defer rows.Close()

	var items []entity.TransactionItem
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(
			&it.ID, &it.TransactionID, &it.ProductID, &it.ProductName,
			&it.UnitPrice, &it.Quantity, &it.Discount, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByIdempotencyKey returns the header stored under the key or (nil, nil).
func (r *TransactionRepo) GetByIdempotencyKey(ctx context.Context, storeID, key string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transaksi WHERE store_id = $1 AND idempotency_key = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, key))
}

// MarkVoided flips the status to dibatalkan. The status guard in the WHERE
// clause makes a second void a no-op that reports ErrAlreadyVoided.
func (r *TransactionRepo) MarkVoided(ctx context.Context, storeID, id, reason string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE transaksi SET status = $4, alasan_batal = $3
		WHERE store_id = $1 AND id = $2 AND status <> $4`,
		storeID, id, reason, entity.TxStatusVoided)
	if err != nil {
		return fmt.Errorf("mark voided: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM transaksi WHERE store_id = $1 AND id = $2)`,
			storeID, id).Scan(&exists); err != nil {
			return fmt.Errorf("check transaction: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyVoided
	}
	return nil
}

// List pages headers newest first, optionally bounded by date and status.
func (r *TransactionRepo) List(ctx context.Context, storeID string, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	where := ` FROM transaksi WHERE store_id = $1`
	args := []any{storeID}
	pos := 2
	if f.From != nil {
		where += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	if f.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID, &t.StoreID, &t.InvoiceNumber, &t.CustomerID, &t.CustomerName,
			&t.Subtotal, &t.Discount, &t.Tax, &t.GrandTotal, &t.AmountPaid, &t.Change,
			&t.PaymentMethod, &t.Note, &t.Status, &t.VoidReason, &t.IdempotencyKey, &t.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *TransactionRepo) scanOne(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.StoreID, &t.InvoiceNumber, &t.CustomerID, &t.CustomerName,
		&t.Subtotal, &t.Discount, &t.Tax, &t.GrandTotal, &t.AmountPaid, &t.Change,
		&t.PaymentMethod, &t.Note, &t.Status, &t.VoidReason, &t.IdempotencyKey, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}
