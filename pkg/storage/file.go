package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bastiangx/guessr/internal/utils"
	"github.com/charmbracelet/log"
)

const fileExt = ".msgpack"

// FileStore keeps one msgpack file per key inside a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the backing directory
func (fs *FileStore) Dir() string {
	return fs.dir
}

func (fs *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(fs.dir, key+fileExt), nil
}

// Get implements Store
func (fs *FileStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := fs.path(key)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		out[key] = data
	}
	return out, nil
}

// Set implements Store. Each key is replaced atomically; keys are written
// independently, there is no transaction across them.
func (fs *FileStore) Set(ctx context.Context, values map[string][]byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for key, data := range values {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := fs.path(key)
		if err != nil {
			return err
		}
		if err := utils.WriteFileAtomic(p, data); err != nil {
			return err
		}
		log.Debugf("Stored %s (%d bytes)", key, len(data))
	}
	return nil
}
