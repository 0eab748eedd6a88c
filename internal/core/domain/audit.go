package domain

import "time"

const (
	AuditAccountCreated = "account.created"
	AuditAccountUpdated = "account.updated"
	AuditAccountDeleted = "account.deleted"
)

// AuditEntry records a lifecycle change of an account.
// ActorID is zero when the change was made anonymously (signup).
type AuditEntry struct {
	Action     string
	AccountID  int64
	ActorID    int64
	OccurredAt time.Time
}
