package persona

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/moovely/greener/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// exerciseStore runs the behaviour every Store must share
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	session := NewSessionID()

	_, err := store.Load(ctx, session)
	assert.True(t, errors.Is(err, ErrNotFound), "empty store: %v", err)

	require.NoError(t, store.Save(ctx, session, domain.PersonaGrowingFamily))
	rec, err := store.Load(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, session, rec.SessionID)
	assert.Equal(t, domain.PersonaGrowingFamily, rec.PersonaID)

	require.NoError(t, store.Save(ctx, session, domain.PersonaDownsizerWFH))
	p, err := Resolve(ctx, store, session)
	require.NoError(t, err)
	assert.Equal(t, domain.PersonaDownsizerWFH, p.ID)

	err = store.Save(ctx, session, "retiree")
	assert.True(t, errors.Is(err, ErrUnknownPersona))

	require.NoError(t, store.Clear(ctx, session))
	_, err = store.Load(ctx, session)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Clear(ctx, session), "clearing twice is fine")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	assert.ErrorIs(t, store.Save(ctx, "s", domain.PersonaGrowingFamily), context.Canceled)
	_, err := store.Load(ctx, "s")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_SessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.now = func() time.Time { return fixedNow }

	require.NoError(t, store.Save(ctx, "a", domain.PersonaYoungProfessional))
	require.NoError(t, store.Save(ctx, "b", domain.PersonaGrowingFamily))

	a, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.PersonaYoungProfessional, a.PersonaID)
	assert.Equal(t, fixedNow, a.SavedAt)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "persona.yaml")
	exerciseStore(t, NewFileStore(path))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persona.yaml")

	require.NoError(t, NewFileStore(path).Save(ctx, "cli", domain.PersonaYoungProfessional))

	rec, err := NewFileStore(path).Load(ctx, "cli")
	require.NoError(t, err)
	assert.Equal(t, domain.PersonaYoungProfessional, rec.PersonaID)
}

func TestResolve_StaleID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.records["old"] = Record{SessionID: "old", PersonaID: "retiree"}

	_, err := Resolve(ctx, store, "old")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestValidateSessionID(t *testing.T) {
	assert.NoError(t, ValidateSessionID(NewSessionID()))
	assert.Error(t, ValidateSessionID("not-a-uuid"))
	assert.Error(t, ValidateSessionID(""))
}

// fakeRedis implements redisClient over a map
type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failing error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.failing != nil {
		return redis.NewStringResult("", f.failing)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) GetEx(ctx context.Context, key string, expiration time.Duration) *redis.StringCmd {
	cmd := f.Get(ctx, key)
	if cmd.Err() == nil {
		f.ttls[key] = expiration
	}
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.failing != nil {
		return redis.NewStatusResult("", f.failing)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.failing != nil {
		return redis.NewIntResult(0, f.failing)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisStore(t *testing.T) {
	exerciseStore(t, NewRedisStore(newFakeRedis(), time.Hour))
}

func TestRedisStore_KeyAndTTL(t *testing.T) {
	fake := newFakeRedis()
	store := NewRedisStore(fake, 30*time.Minute)

	require.NoError(t, store.Save(context.Background(), "abc", domain.PersonaGrowingFamily))

	raw, ok := fake.data["moovely-persona:abc"]
	require.True(t, ok)
	assert.Contains(t, raw, `"persona_id":"growing-family"`)
	assert.Equal(t, 30*time.Minute, fake.ttls["moovely-persona:abc"])

	assert.Equal(t, time.Duration(0), NewRedisStore(fake, -time.Second).ttl)
}

func TestRedisStore_LoadRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	store := NewRedisStore(fake, 30*time.Minute)
	key := "moovely-persona:abc"

	require.NoError(t, store.Save(ctx, "abc", domain.PersonaYoungProfessional))

	// Simulate most of the window elapsing
	fake.ttls[key] = time.Minute
	rec, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.PersonaYoungProfessional, rec.PersonaID)
	assert.Equal(t, 30*time.Minute, fake.ttls[key])

	// A miss leaves nothing behind
	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok := fake.ttls["moovely-persona:missing"]
	assert.False(t, ok)

	// Without a ttl the key is read as-is
	forever := NewRedisStore(fake, 0)
	fake.ttls[key] = time.Minute
	_, err = forever.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, fake.ttls[key])
}

func TestRedisStore_Errors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	store := NewRedisStore(fake, time.Hour)

	fake.data["moovely-persona:bad"] = "{not json"
	_, err := store.Load(ctx, "bad")
	assert.ErrorContains(t, err, "failed to decode persona record")

	fake.failing = errors.New("connection refused")
	assert.ErrorContains(t, store.Save(ctx, "x", domain.PersonaGrowingFamily), "connection refused")
	_, err = store.Load(ctx, "x")
	assert.ErrorContains(t, err, "redis GET")
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.ErrorContains(t, store.Clear(ctx, "x"), "redis DEL")
}
