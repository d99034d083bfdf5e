package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// SettlementRepository performs the paired wallet-and-roster mutation inside
// a Mongo session transaction. Both updates carry their business condition in
// the query filter (membership, capacity, funds), so a concurrent writer that
// invalidated the caller's read makes the condition fail and the whole
// transaction abort — never a partial mutation.
type SettlementRepository struct {
	db *mongo.Database
}

func NewSettlementRepository(db *mongo.Database) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// rosterHasRoom matches events that are unlimited (capacity <= 0) or whose
// roster is strictly below capacity.
var rosterHasRoom = bson.M{"$or": bson.A{
	bson.M{"$lte": bson.A{"$capacity", 0}},
	bson.M{"$lt": bson.A{bson.M{"$size": "$enrolled_users"}, "$capacity"}},
}}

func (r *SettlementRepository) EnrollAndDebit(ctx context.Context, userID, eventID string, amount float64) error {
	eventOID, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return domain.ErrEventNotFound
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	return r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		now := time.Now().UTC()

		eventFilter := bson.M{
			"_id":            eventOID,
			"enrolled_users": bson.M{"$ne": userID},
			"$expr":          rosterHasRoom,
		}
		eventUpdate := bson.M{
			"$addToSet": bson.M{"enrolled_users": userID},
			"$set":      bson.M{"updated_at": now},
		}
		res, err := r.db.Collection(collectionEvents).UpdateOne(sc, eventFilter, eventUpdate)
		if err != nil {
			return fmt.Errorf("settle enroll: roster: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrSettlementConflict
		}

		if amount > 0 {
			userFilter := bson.M{
				"_id":     userOID,
				"balance": bson.M{"$gte": amount},
			}
			userUpdate := bson.M{
				"$inc": bson.M{"balance": -amount},
				"$set": bson.M{"updated_at": now},
			}
			res, err := r.db.Collection(collectionUsers).UpdateOne(sc, userFilter, userUpdate)
			if err != nil {
				return fmt.Errorf("settle enroll: wallet: %w", err)
			}
			if res.MatchedCount == 0 {
				return domain.ErrInsufficientFunds
			}
		}

		return nil
	})
}

func (r *SettlementRepository) UnenrollAndCredit(ctx context.Context, userID, eventID string, amount float64) error {
	eventOID, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return domain.ErrEventNotFound
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	return r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		now := time.Now().UTC()

		eventFilter := bson.M{
			"_id":            eventOID,
			"enrolled_users": userID,
		}
		eventUpdate := bson.M{
			"$pull": bson.M{"enrolled_users": userID},
			"$set":  bson.M{"updated_at": now},
		}
		res, err := r.db.Collection(collectionEvents).UpdateOne(sc, eventFilter, eventUpdate)
		if err != nil {
			return fmt.Errorf("settle unenroll: roster: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrSettlementConflict
		}

		if amount > 0 {
			// Refund credit is unconditional: no ceiling guard.
			userUpdate := bson.M{
				"$inc": bson.M{"balance": amount},
				"$set": bson.M{"updated_at": now},
			}
			res, err := r.db.Collection(collectionUsers).UpdateOne(sc, bson.M{"_id": userOID}, userUpdate)
			if err != nil {
				return fmt.Errorf("settle unenroll: wallet: %w", err)
			}
			if res.MatchedCount == 0 {
				return domain.ErrUserNotFound
			}
		}

		return nil
	})
}

// inTransaction runs fn inside a session transaction. Domain errors returned
// by fn abort the transaction and pass through unchanged; transient Mongo
// write conflicts are retried by the driver.
func (r *SettlementRepository) inTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
