// Package session owns the per-tab identity and its lifecycle: creation,
// uniform propagation on every outbound request, and cleanup when the tab
// ends or the user clears their data.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const identityFile = "tab_id"

// Identity is the stable per-tab identifier. It is created once on first use,
// persisted for the tab's lifetime and never mutated; invalidating it forces
// a fresh identifier on next use.
type Identity struct {
	mu   sync.Mutex
	dir  string
	id   string
}

// NewIdentity persists the identifier under stateDir; an empty stateDir falls
// back to the user cache directory.
func NewIdentity(stateDir string) (*Identity, error) {
	if stateDir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state directory: %w", err)
		}
		stateDir = filepath.Join(cache, "course-navigator")
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &Identity{dir: stateDir}, nil
}

// GetOrCreate returns the tab's identifier, generating and persisting a new
// one if absent.
func (i *Identity) GetOrCreate() (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.id != "" {
		return i.id, nil
	}

	path := filepath.Join(i.dir, identityFile)
	if raw, err := os.ReadFile(path); err == nil {
		if id, err := uuid.Parse(string(raw)); err == nil {
			i.id = id.String()
			return i.id, nil
		}
	}

	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id), 0o600); err != nil {
		return "", fmt.Errorf("persist tab identity: %w", err)
	}
	i.id = id
	return id, nil
}

// Invalidate discards the persisted identifier so a new one is minted on the
// next GetOrCreate.
func (i *Identity) Invalidate() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.id = ""
	path := filepath.Join(i.dir, identityFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("discard tab identity: %w", err)
	}
	return nil
}
