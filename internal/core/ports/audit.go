package ports

import (
	"context"
	"time"
)

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditEntry records a single catalog mutation for the audit trail.
type AuditEntry struct {
	Actor     string
	Action    string
	ProductID int64
	Timestamp time.Time
}

// AuditSink accepts audit entries for asynchronous processing.
type AuditSink interface {
	Submit(entry AuditEntry)
}

// AuditRecorder persists a single audit entry.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}
