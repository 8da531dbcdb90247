package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"job-connect/internal/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ResumePrefix      = "resumes"
	ApplicationPrefix = "applications"
)

var (
	ErrEmptyFile       = errors.New("empty file")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidRef      = errors.New("invalid storage reference")
)

// Storage keeps uploaded documents and returns an opaque reference to them.
type Storage interface {
	Store(ctx context.Context, data []byte, prefix, suggestedName string) (string, error)
	Delete(ctx context.Context, ref string) error
}

var allowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/rtf",
	"text/plain",
}

var allowedExt = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".rtf":  {},
	".txt":  {},
}

// CheckDocument sniffs data and rejects anything that is not a resume-like
// document or exceeds maxSize. It returns the extension to store it under.
func CheckDocument(data []byte, suggestedName string, maxSize int64) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", ErrFileTooLarge
	}

	// Only exact matches count: html, xml, svg and json all descend from
	// text/plain in the detection tree.
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedTypes...) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	ext := strings.ToLower(path.Ext(suggestedName))
	if _, known := allowedExt[ext]; !known {
		ext = mt.Extension()
	}
	if _, known := allowedExt[ext]; !known {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}
	return ext, nil
}

// NewKey builds "<prefix>/<uuid><ext>".
func NewKey(prefix, ext string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = ResumePrefix
	}
	return prefix + "/" + uuid.NewString() + ext
}

func validRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "/") || strings.Contains(ref, "\\") {
		return false
	}
	clean := path.Clean(ref)
	return clean == ref && !strings.HasPrefix(clean, "..")
}

func New(cfg config.StorageConfig, logger *logrus.Logger) (Storage, error) {
	switch cfg.Driver {
	case config.StorageSpaces:
		return NewSpaces(cfg, logger)
	case config.StorageLocal, "":
		return NewLocal(cfg.LocalDir, cfg.MaxUploadSize, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
