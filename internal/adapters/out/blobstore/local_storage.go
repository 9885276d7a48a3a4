package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/spf13/afero"
)

// LocalStorage writes files below a root directory of an afero filesystem. Production
// uses the OS filesystem; tests use an in-memory one.
type LocalStorage struct {
	fs   afero.Fs
	root string
}

func NewLocalStorage(fs afero.Fs, root string) *LocalStorage {
	return &LocalStorage{fs: fs, root: root}
}

// Save writes body to root/key and returns that path.
func (s *LocalStorage) Save(ctx context.Context, key string, body io.Reader, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key = cleanKey(key)
	if key == "" {
		return "", errors.New("empty file key")
	}

	target := path.Join(s.root, key)
	if err := s.fs.MkdirAll(path.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", key, err)
	}
	if err := afero.WriteReader(s.fs, target, body); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return target, nil
}
