package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RomanKim94/foodgram/entity"
)

// LocalStore writes images below Root; route serves Root under URLPrefix.
type LocalStore struct {
	Root      string
	URLPrefix string
}

func NewLocalStore(root, urlPrefix string) *LocalStore {
	return &LocalStore{Root: root, URLPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

func (s *LocalStore) Save(_ context.Context, dir string, img *entity.Image) (string, error) {
	key, err := objectKey(dir, img)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return s.URLPrefix + "/" + key, nil
}

func (s *LocalStore) Delete(_ context.Context, ref string) error {
	key, err := keyFromRef(s.URLPrefix, ref)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.Root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
