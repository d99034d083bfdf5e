package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/encontro-app/encontro/internal/core/domain"
)

const collectionLedger = "wallet_ledger"

// LedgerRepository persists wallet audit entries. Entry IDs are caller-
// supplied UUIDs, so inserts are idempotent under at-least-once delivery
// from the async writer.
type LedgerRepository struct {
	coll *mongo.Collection
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{coll: db.Collection(collectionLedger)}
}

func (r *LedgerRepository) Insert(ctx context.Context, entry *domain.LedgerEntry) error {
	_, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID string) ([]*domain.LedgerEntry, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := []*domain.LedgerEntry{}
	for cur.Next(ctx) {
		var e domain.LedgerEntry
		if err := cur.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, cur.Err()
}

// EnsureIndexes creates the per-user lookup index.
func (r *LedgerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
