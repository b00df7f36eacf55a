package entity

import (
	"encoding/json"
	"time"
)

// Audit actions.
const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
	AuditVoid   = "VOID"
)

// AuditLog is one append-only trail entry. Writing it must never fail the
// primary operation.
type AuditLog struct {
	ID        string
	StoreID   string
	UserID    string
	Action    string
	TableName string
	RecordID  string
	NewValues json.RawMessage
	CreatedAt time.Time
}
