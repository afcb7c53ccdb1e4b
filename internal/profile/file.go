package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// DirEnv overrides the profile directory (for testing).
	DirEnv = "PANEBOARD_PROFILES_DIR"
	// DefaultDir is the profile directory relative to the user's home.
	DefaultDir = ".paneboard/profiles"
	// Ext is the file extension of a stored descriptor.
	Ext = ".layout"
)

// FileStore keeps one descriptor per file: <dir>/<normalized-name>.layout.
type FileStore struct {
	baseDir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store rooted at dir. An empty dir means the path in
// PANEBOARD_PROFILES_DIR, or ~/.paneboard/profiles.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = os.Getenv(DirEnv)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, DefaultDir)
	}
	return &FileStore{baseDir: dir}, nil
}

// BaseDir returns the directory profiles are stored in.
func (s *FileStore) BaseDir() string { return s.baseDir }

// Path returns the file a profile is stored in.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.baseDir, Normalize(name)+Ext)
}

// Load reads a profile's descriptor. Surrounding whitespace is dropped.
func (s *FileStore) Load(ctx context.Context, name string) (string, error) {
	n, err := validName(name)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(s.Path(n))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, n)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Save writes a descriptor, replacing any previous one atomically.
func (s *FileStore) Save(ctx context.Context, name, descriptor string) error {
	n, err := validName(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.baseDir, "."+n+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(descriptor + "\n"); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(n))
}

// List returns the stored profile names, sorted. A missing directory is empty.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a profile.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	n, err := validName(name)
	if err != nil {
		return err
	}
	err = os.Remove(s.Path(n))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, n)
	}
	return err
}
