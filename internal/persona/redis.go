package persona

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/moovely/greener/internal/domain"
	"github.com/redis/go-redis/v9"
)

// redisClient is the subset of go-redis used by RedisStore
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	GetEx(ctx context.Context, key string, expiration time.Duration) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps preferences in Redis with a sliding expiry: every Load
// pushes the key's TTL forward again.
type RedisStore struct {
	client redisClient
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore wraps an existing client. A non-positive ttl keeps keys
// forever.
func NewRedisStore(client redisClient, ttl time.Duration) *RedisStore {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

// Connect opens a Redis client and checks it with PING
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) key(sessionID string) string {
	return KeyPrefix + ":" + sessionID
}

// Save records the persona for a session
func (s *RedisStore) Save(ctx context.Context, sessionID string, id domain.PersonaID) error {
	if _, err := Lookup(id); err != nil {
		return err
	}
	data, err := json.Marshal(Record{SessionID: sessionID, PersonaID: id, SavedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode persona record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", s.key(sessionID), err)
	}
	return nil
}

// Load returns the saved persona for a session and refreshes its expiry
func (s *RedisStore) Load(ctx context.Context, sessionID string) (Record, error) {
	key := s.key(sessionID)
	verb := "GET"
	var cmd *redis.StringCmd
	if s.ttl > 0 {
		verb = "GETEX"
		cmd = s.client.GetEx(ctx, key, s.ttl)
	} else {
		cmd = s.client.Get(ctx, key)
	}

	raw, err := cmd.Result()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("redis %s %s: %w", verb, key, err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode persona record: %w", err)
	}
	return rec, nil
}

// Clear forgets the persona for a session
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", s.key(sessionID), err)
	}
	return nil
}
