// Package storage keeps uploaded images (recipe pictures and avatars) and
// turns them into references that can be served to clients.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/RomanKim94/foodgram/entity"

	"github.com/google/uuid"
)

// ErrForeignReference is returned by Delete for references the store did not
// produce.
var ErrForeignReference = errors.New("storage: reference does not belong to this store")

// ImageStore saves images under a directory and returns the public reference
// stored on the owning row.
type ImageStore interface {
	Save(ctx context.Context, dir string, img *entity.Image) (string, error)
	Delete(ctx context.Context, ref string) error
}

// New builds the store selected by cfg.Backend.
func New(ctx context.Context, cfg entity.MediaConfig) (ImageStore, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(cfg.Root, cfg.URLPrefix), nil
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported media backend %q", cfg.Backend)
	}
}

// ErrInvalidExtension is returned by Save when the image extension is not a
// plain file-name suffix.
var ErrInvalidExtension = errors.New("storage: invalid image extension")

// objectKey returns a fresh key such as "recipes/<uuid>.png". Extensions
// holding path separators or dot segments are rejected.
func objectKey(dir string, img *entity.Image) (string, error) {
	ext := strings.TrimPrefix(img.Ext, ".")
	if ext == "" {
		ext = "bin"
	}
	if strings.ContainsAny(ext, `/\`) || strings.Contains(ext, "..") {
		return "", ErrInvalidExtension
	}
	return path.Join(dir, uuid.NewString()+"."+ext), nil
}

// keyFromRef strips prefix from ref and rejects anything escaping it.
func keyFromRef(prefix, ref string) (string, error) {
	prefix = strings.TrimRight(prefix, "/") + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", ErrForeignReference
	}
	key := path.Clean(strings.TrimPrefix(ref, prefix))
	if key == "." || strings.HasPrefix(key, "..") || path.IsAbs(key) {
		return "", ErrForeignReference
	}
	return key, nil
}
