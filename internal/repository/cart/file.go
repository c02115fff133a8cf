package cart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"storefront/internal/domain"
)

type fileRepo struct {
	dir string
}

// NewFile keeps each slot in <dir>/<slot>.json.
func NewFile(dir string) Repository {
	return &fileRepo{dir: dir}
}

func (r *fileRepo) path(slot string) string {
	return filepath.Join(r.dir, slot+".json")
}

func (r *fileRepo) Load(_ context.Context, slot string) ([]byte, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path(slot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save writes through a temp file and renames it over the slot so readers
// never observe a partial payload.
func (r *fileRepo) Save(_ context.Context, slot string, payload []byte) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}
	tmp, err := os.CreateTemp(r.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path(slot)); err != nil {
		return fmt.Errorf("replace slot: %w", err)
	}
	return nil
}

func (r *fileRepo) Ping(_ context.Context) error {
	return os.MkdirAll(r.dir, 0o755)
}
