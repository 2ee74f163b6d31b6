package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

const auditCollection = "catalog_audit"

// AuditRepository appends catalog mutation entries to an audit collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Actor     string `bson:"actor"`
	Action    string `bson:"action"`
	ProductID int64  `bson:"product_id"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Record(ctx context.Context, entry ports.AuditEntry) error {
	doc := auditDoc{
		Actor:     entry.Actor,
		Action:    entry.Action,
		ProductID: entry.ProductID,
		Timestamp: entry.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
