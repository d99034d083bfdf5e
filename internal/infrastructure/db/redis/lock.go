package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// lockTTL bounds how long a crashed holder can keep a pair locked.
const lockTTL = 10 * time.Second

// SettlementLock serializes settlements on a (user, event) pair.
// Key format: settle:<user_id>:<event_id>
type SettlementLock struct {
	client *redis.Client
}

// NewSettlementLock creates a SettlementLock wrapping the given Redis client.
func NewSettlementLock(client *redis.Client) *SettlementLock {
	return &SettlementLock{client: client}
}

// Acquire takes the pair lock with SET NX. A held pair yields
// domain.ErrSettlementConflict; infrastructure errors are returned as-is so
// the caller can decide to fail open.
func (l *SettlementLock) Acquire(ctx context.Context, userID, eventID string) (func(), error) {
	key := l.key(userID, eventID)

	ok, err := l.client.SetNX(ctx, key, "1", lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("settlement lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrSettlementConflict
	}

	return func() {
		// Release must not depend on the request context still being alive.
		releaseCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		_ = l.client.Del(releaseCtx, key).Err()
	}, nil
}

func (l *SettlementLock) key(userID, eventID string) string {
	return fmt.Sprintf("settle:%s:%s", userID, eventID)
}
