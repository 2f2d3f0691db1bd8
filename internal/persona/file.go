package persona

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/moovely/greener/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileStore keeps preferences in a YAML file, for the command line where
// there is no long-running process
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

type fileContents struct {
	Sessions map[string]Record `yaml:"sessions"`
}

// NewFileStore uses the given file, creating it on first save
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// DefaultFilePath is persona.yaml under the user's config directory
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "moovely", "persona.yaml"), nil
}

func (s *FileStore) read() (fileContents, error) {
	contents := fileContents{Sessions: map[string]Record{}}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return contents, nil
	}
	if err != nil {
		return contents, fmt.Errorf("failed to read file %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(data, &contents); err != nil {
		return contents, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if contents.Sessions == nil {
		contents.Sessions = map[string]Record{}
	}
	return contents, nil
}

func (s *FileStore) write(contents fileContents) error {
	data, err := yaml.Marshal(contents)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", s.path, err)
	}
	return nil
}

// Save records the persona for a session
func (s *FileStore) Save(ctx context.Context, sessionID string, id domain.PersonaID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := Lookup(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.read()
	if err != nil {
		return err
	}
	contents.Sessions[sessionID] = Record{SessionID: sessionID, PersonaID: id, SavedAt: s.now().UTC()}
	return s.write(contents)
}

// Load returns the saved persona for a session
func (s *FileStore) Load(ctx context.Context, sessionID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.read()
	if err != nil {
		return Record{}, err
	}
	rec, ok := contents.Sessions[sessionID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Clear forgets the persona for a session
func (s *FileStore) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := contents.Sessions[sessionID]; !ok {
		return nil
	}
	delete(contents.Sessions, sessionID)
	return s.write(contents)
}
