package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// DefaultFileQuota mirrors the usual browser local storage allowance.
const DefaultFileQuota = 5 << 20

var _ port.KVStore = (*File)(nil)

// File stores every slot as its own file under dir. Writes are atomic, so a
// crash leaves either the old or the new value. The combined size of all
// slots is capped by the quota.
type File struct {
	mu    sync.Mutex
	dir   string
	quota int64
}

type FileOpt func(*File)

// WithQuota caps the total bytes stored. n <= 0 disables the cap.
func WithQuota(n int64) FileOpt {
	return func(f *File) {
		f.quota = n
	}
}

func NewFile(dir string, opts ...FileOpt) (*File, error) {
	const op = "NewFile"

	f := &File{dir: dir, quota: DefaultFileQuota}
	for _, o := range opts {
		o(f)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "File.Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !validKey(key) {
		return nil, fmt.Errorf("%s: %q: %w", op, key, ErrInvalidKey)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.slotPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: key %q: %w", op, key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	const op = "File.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !validKey(key) {
		return fmt.Errorf("%s: %q: %w", op, key, ErrInvalidKey)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.quota > 0 {
		used, err := f.usedExcept(key)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if used+int64(len(value)) > f.quota {
			return fmt.Errorf(
				"%s: key %q needs %d bytes, %d of %d in use: %w",
				op, key, len(value), used, f.quota, ErrQuotaExceeded,
			)
		}
	}

	if err := atomic.WriteFile(f.slotPath(key), bytes.NewReader(value)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (f *File) Close() error {
	return nil
}

func (f *File) slotPath(key string) string {
	return filepath.Join(f.dir, key)
}

// usedExcept sums the sizes of all slots but key.
func (f *File) usedExcept(key string) (int64, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, err
	}

	var used int64
	for _, e := range entries {
		if e.IsDir() || e.Name() == key || !validKey(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return 0, err
		}
		used += info.Size()
	}
	return used, nil
}
