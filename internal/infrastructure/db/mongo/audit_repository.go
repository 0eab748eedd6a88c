package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orius/cartorio-api/internal/core/domain"
)

const collectionAccountAudit = "account_audit"

type auditDocument struct {
	Action     string    `bson:"action"`
	AccountID  int64     `bson:"account_id"`
	ActorID    int64     `bson:"actor_id,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// AuditRepository appends account lifecycle entries to the account_audit
// collection.
type AuditRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAccountAudit), now: time.Now}
}

func (r *AuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDocument{
		Action:     entry.Action,
		AccountID:  entry.AccountID,
		ActorID:    entry.ActorID,
		OccurredAt: entry.OccurredAt.UTC(),
		RecordedAt: r.now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index used to read an account's history.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
