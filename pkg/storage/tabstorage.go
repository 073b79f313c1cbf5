package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TabStorage persists per-tab session files on disk under a base directory.
// Every tab gets its own subtree; removing the last tab removes the base dir
// so nothing lingers between sessions.
type TabStorage struct {
	baseDir string
}

// NewTabStorage ensures the base directory exists and returns a handle.
func NewTabStorage(baseDir string) (*TabStorage, error) {
	if baseDir == "" {
		baseDir = "./temporary_data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	return &TabStorage{baseDir: baseDir}, nil
}

// TabDir ensures the tab's directory exists and returns its path.
func (s *TabStorage) TabDir(tabID string) (string, error) {
	dir := filepath.Join(s.baseDir, tabID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("prepare tab directory: %w", err)
	}
	return dir, nil
}

// Save writes the given bytes to the named file inside the tab's directory.
func (s *TabStorage) Save(tabID, filename string, data []byte) (string, error) {
	path := s.resolve(tabID, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare tab directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write session file: %w", err)
	}
	return path, nil
}

// SaveStream copies from reader into the named file inside the tab's directory.
func (s *TabStorage) SaveStream(tabID, filename string, r io.Reader) (string, error) {
	path := s.resolve(tabID, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare tab directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create session file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write session stream: %w", err)
	}
	return path, nil
}

// Open returns a read-only handle for a stored file.
func (s *TabStorage) Open(tabID, filename string) (*os.File, error) {
	file, err := os.Open(s.resolve(tabID, filename))
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	return file, nil
}

// Exists reports whether the named file is present for the tab.
func (s *TabStorage) Exists(tabID, filename string) bool {
	_, err := os.Stat(s.resolve(tabID, filename))
	return err == nil
}

// RemoveTab deletes one tab's subtree; when it was the last one, the base
// directory goes too.
func (s *TabStorage) RemoveTab(tabID string) error {
	dir := filepath.Join(s.baseDir, tabID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove tab directory: %w", err)
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil
	}
	if len(entries) == 0 {
		_ = os.Remove(s.baseDir)
	}
	return nil
}

// RemoveAll deletes the whole base directory. Used on server shutdown.
func (s *TabStorage) RemoveAll() error {
	if err := os.RemoveAll(s.baseDir); err != nil {
		return fmt.Errorf("remove temp directory: %w", err)
	}
	return nil
}

// Path exposes the underlying path for a tab file (useful for serving).
func (s *TabStorage) Path(tabID, filename string) string {
	return s.resolve(tabID, filename)
}

// BaseDir returns the storage root.
func (s *TabStorage) BaseDir() string {
	return s.baseDir
}

func (s *TabStorage) resolve(tabID, filename string) string {
	return filepath.Join(s.baseDir, tabID, filename)
}
