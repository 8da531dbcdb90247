package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

type Local struct {
	root    string
	maxSize int64
	logger  *logrus.Logger
}

func NewLocal(root string, maxSize int64, logger *logrus.Logger) (*Local, error) {
	if root == "" {
		return nil, errors.New("empty storage root")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Local{root: root, maxSize: maxSize, logger: logger}, nil
}

func (l *Local) Store(ctx context.Context, data []byte, prefix, suggestedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext, err := CheckDocument(data, suggestedName, l.maxSize)
	if err != nil {
		return "", err
	}

	ref := NewKey(prefix, ext)
	full := filepath.Join(l.root, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if l.logger != nil {
		l.logger.WithFields(logrus.Fields{"ref": ref, "size_bytes": len(data)}).Debug("file stored")
	}
	return ref, nil
}

// Delete removes ref. A missing file is not an error.
func (l *Local) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validRef(ref) {
		return ErrInvalidRef
	}
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// Path resolves ref to its location on disk.
func (l *Local) Path(ref string) (string, error) {
	if !validRef(ref) {
		return "", ErrInvalidRef
	}
	return filepath.Join(l.root, filepath.FromSlash(ref)), nil
}
