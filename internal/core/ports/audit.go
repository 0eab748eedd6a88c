package ports

import (
	"context"

	"github.com/orius/cartorio-api/internal/core/domain"
)

// AuditLog accepts audit entries without blocking the caller.
type AuditLog interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}
