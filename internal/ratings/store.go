package ratings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists accepted ratings.
type Store interface {
	Append(ctx context.Context, r Rating) error
	Close() error
}

// Config selects and configures a Store.
type Config struct {
	// Driver is "file" (default) or "mysql".
	Driver string
	// Output is the TSV log path for the file driver.
	Output string
	// DSN is the go-sql-driver/mysql data source name for the mysql driver.
	DSN string
}

// Open returns the Store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return OpenFileStore(cfg.Output)
	case "mysql":
		return OpenMySQLStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown ratings driver %q (expected file or mysql)", cfg.Driver)
	}
}

// FileStore appends ratings to a TSV log. Appends are serialized so that
// concurrent requests never interleave partial lines.
type FileStore struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// OpenFileStore opens path for appending, creating the file and its parent
// directories when missing.
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("rating log path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for rating log: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open rating log: %w", err)
	}
	return &FileStore{path: path, f: f}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Append(ctx context.Context, r Rating) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.WriteString(FormatTSV(r)); err != nil {
		return fmt.Errorf("failed to append rating: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
