package persona

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moovely/greener/internal/domain"
)

// ErrNotFound is returned when a session has no saved persona
var ErrNotFound = errors.New("no saved persona")

// KeyPrefix namespaces persona preferences in shared stores
const KeyPrefix = "moovely-persona"

// Record is a saved persona preference for one session
type Record struct {
	SessionID string           `json:"session_id" yaml:"session_id"`
	PersonaID domain.PersonaID `json:"persona_id" yaml:"persona_id"`
	SavedAt   time.Time        `json:"saved_at" yaml:"saved_at"`
}

// Store persists the single persona preference per session
type Store interface {
	Save(ctx context.Context, sessionID string, id domain.PersonaID) error
	Load(ctx context.Context, sessionID string) (Record, error)
	Clear(ctx context.Context, sessionID string) error
}

// NewSessionID returns a fresh random session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// ValidateSessionID checks that a session ID is a UUID
func ValidateSessionID(sessionID string) error {
	if _, err := uuid.Parse(strings.TrimSpace(sessionID)); err != nil {
		return fmt.Errorf("invalid session id %q: %w", sessionID, err)
	}
	return nil
}

// Resolve loads the saved preset for a session. A stored ID that is no
// longer a preset counts as not found.
func Resolve(ctx context.Context, store Store, sessionID string) (domain.Persona, error) {
	rec, err := store.Load(ctx, sessionID)
	if err != nil {
		return domain.Persona{}, err
	}
	p, err := Lookup(rec.PersonaID)
	if err != nil {
		return domain.Persona{}, fmt.Errorf("%w: stored persona %q is no longer available", ErrNotFound, rec.PersonaID)
	}
	return p, nil
}

// MemoryStore keeps preferences in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

// Save records the persona for a session, replacing any earlier choice
func (s *MemoryStore) Save(ctx context.Context, sessionID string, id domain.PersonaID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := Lookup(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = Record{SessionID: sessionID, PersonaID: id, SavedAt: s.now().UTC()}
	return nil
}

// Load returns the saved persona for a session
func (s *MemoryStore) Load(ctx context.Context, sessionID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[sessionID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Clear forgets the persona for a session. Clearing an unknown session is
// not an error.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	return nil
}
