package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RomanKim94/foodgram/entity"
)

func TestLocalStoreSaveDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "media/")
	ctx := context.Background()

	ref, err := store.Save(ctx, "recipes", &entity.Image{Data: []byte("png-bytes"), Ext: "png"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(ref, "/media/recipes/") || !strings.HasSuffix(ref, ".png") {
		t.Fatalf("ref = %q", ref)
	}

	full := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(ref, "/media/")))
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored data = %q", data)
	}

	if err := store.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Errorf("file still present: %v", err)
	}
	// Deleting twice is not an error.
	if err := store.Delete(ctx, ref); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLocalStoreKeysAreUnique(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media")
	img := &entity.Image{Data: []byte("x"), Ext: "jpeg"}
	a, err := store.Save(context.Background(), "users", img)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := store.Save(context.Background(), "users", img)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if a == b {
		t.Errorf("two saves produced the same reference %q", a)
	}
}

func TestLocalStoreRejectsForeignReferences(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media")
	for _, ref := range []string{
		"https://cdn.example.com/recipes/a.png",
		"/static/recipes/a.png",
		"/media/../etc/passwd",
		"/media/",
	} {
		if err := store.Delete(context.Background(), ref); !errors.Is(err, ErrForeignReference) {
			t.Errorf("Delete(%q) = %v, want ErrForeignReference", ref, err)
		}
	}
}

func TestObjectKeyDefaultsExtension(t *testing.T) {
	key, err := objectKey("recipes", &entity.Image{})
	if err != nil {
		t.Fatalf("objectKey: %v", err)
	}
	if !strings.HasPrefix(key, "recipes/") || !strings.HasSuffix(key, ".bin") {
		t.Errorf("key = %q", key)
	}
}

func TestLocalStoreRejectsPathExtensions(t *testing.T) {
	base := t.TempDir()
	store := NewLocalStore(filepath.Join(base, "a", "media"), "/media")
	for _, ext := range []string{"x/../../../pwned", "..", `png\..\evil`, "png/evil"} {
		ref, err := store.Save(context.Background(), "recipes", &entity.Image{Data: []byte("hello"), Ext: ext})
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("Save(ext %q) = %q, %v; want ErrInvalidExtension", ext, ref, err)
		}
	}
	if _, err := os.Stat(filepath.Join(base, "a", "pwned")); !os.IsNotExist(err) {
		t.Errorf("file written outside the media root: %v", err)
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("unexpected entries under %s: %v", base, entries)
	}
}
