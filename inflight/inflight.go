// Package inflight suppresses duplicate mutations: while one request holds
// the key for an (action, user, post) triple, a second one is refused.
package inflight

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"nostalgic-food-map/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrInFlight = errors.New("operation already in progress")

// Guard hands out exclusive keys.
type Guard interface {
	// Acquire claims key. The returned release must be called once the
	// operation has finished; it is a no-op after the first call.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Key builds the guard key for a mutation on a post.
func Key(action, userID, postID string) string {
	return fmt.Sprintf("foodmap:inflight:%s:%s:%s", action, userID, postID)
}

// Default is used by the handlers; main replaces it when Redis is configured.
var Default Guard = NewMemoryGuard()

func Acquire(ctx context.Context, key string) (func(), error) {
	return Default.Acquire(ctx, key)
}

type memoryGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewMemoryGuard() Guard {
	return &memoryGuard{keys: make(map[string]struct{})}
}

func (g *memoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.keys[key]; held {
		return nil, ErrInFlight
	}
	g.keys[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.keys, key)
			g.mu.Unlock()
		})
	}, nil
}

// redisGuard shares keys between several API processes. The TTL bounds how
// long a crashed holder can block a key. Each holder stores its own token so
// a release after expiry cannot free a later holder's key.
type redisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// releaseScript deletes KEYS[1] only while it still holds ARGV[1].
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisGuard(client *redis.Client, ttl time.Duration) Guard {
	return &redisGuard{client: client, ttl: ttl}
}

func (g *redisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ErrInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, g.client, []string{key}, token).Err(); err != nil {
				// the TTL frees the key eventually
				utils.LogWarn(err, "Error releasing in-flight key "+key)
			}
		})
	}, nil
}

// Connect returns a Redis backed guard, or the in-memory one when addr is
// empty or the server does not answer.
func Connect(addr string) (Guard, error) {
	if addr == "" {
		return NewMemoryGuard(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return NewMemoryGuard(), fmt.Errorf("redis unavailable, using in-memory guard: %w", err)
	}

	return NewRedisGuard(client, 30*time.Second), nil
}
