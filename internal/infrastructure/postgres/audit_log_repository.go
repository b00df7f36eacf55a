package postgres

import (
	"context"
	"fmt"

	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implements the append-only audit trail over PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository builds the adapter. Pass pool or tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create appends one trail entry.
func (r *AuditLogRepo) Create(ctx context.Context, e *entity.AuditLog) error {
	query := `
		INSERT INTO audit_log (id, store_id, user_id, action, table_name, record_id, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.StoreID, e.UserID, e.Action, e.TableName, e.RecordID, e.NewValues, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// ListByStore returns the newest entries.
func (r *AuditLogRepo) ListByStore(ctx context.Context, storeID string, limit int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, store_id, user_id, action, table_name, record_id, new_values, created_at
		FROM audit_log WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditLog
	for rows.Next() {
		var e entity.AuditLog
		if err := rows.Scan(&e.ID, &e.StoreID, &e.UserID, &e.Action, &e.TableName, &e.RecordID, &e.NewValues, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
