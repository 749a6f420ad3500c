package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const statusTTL = time.Hour

func statusKey(id string) string {
	return "document:status:" + id
}

// StatusCache caches classified document statuses so repeated listing calls
// do not recompute the date arithmetic for every document.
type StatusCache interface {
	// SetStatus caches the classification of a document.
	SetStatus(ctx context.Context, docID string, v any) error
	// GetStatus loads a cached classification into out. Returns false when
	// the entry is absent.
	GetStatus(ctx context.Context, docID string, out any) (bool, error)
	// DeleteStatus drops the cached classification of a document.
	DeleteStatus(ctx context.Context, docID string) error
}

var _ StatusCache = (*RedisStatusCache)(nil)

type RedisStatusCache struct {
	client *redis.Client
}

func NewRedisStatusCache(addr string) *RedisStatusCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &RedisStatusCache{client: client}
}

func (r *RedisStatusCache) SetStatus(ctx context.Context, docID string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, statusKey(docID), value, statusTTL).Err()
}

func (r *RedisStatusCache) GetStatus(ctx context.Context, docID string, out any) (bool, error) {
	res := r.client.Get(ctx, statusKey(docID))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return false, nil
		}
		return false, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(buf, out); err != nil {
		return false, err
	}

	return true, nil
}

func (r *RedisStatusCache) DeleteStatus(ctx context.Context, docID string) error {
	return r.client.Del(ctx, statusKey(docID)).Err()
}
