package cache

import (
	"context"
	"time"
)

// Cache is the read-through cache contract the services depend on.
// Get reports (found, err); on a miss dest is left untouched.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}
