// Package storage persists uploaded profile photos under generated names.
// Client-supplied filenames are never trusted.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MaxPhotoBytes is the upload size ceiling (5 MiB).
const MaxPhotoBytes = 5 << 20

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Allowed reports whether contentType is an accepted image type.
func Allowed(contentType string) bool {
	_, ok := extByType[contentType]
	return ok
}

// PhotoStore persists photo bytes and returns a reference the gateway can
// serve.
type PhotoStore interface {
	Save(data []byte, contentType string) (ref string, err error)
	Delete(ref string) error
}

// DiskStore keeps photos on the local filesystem under a single directory,
// served statically by the gateway at /uploads.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(data []byte, contentType string) (string, error) {
	ext, ok := extByType[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// Delete removes a previously stored photo. The base of the reference is
// used so a corrupt stored value cannot escape the upload directory.
func (s *DiskStore) Delete(ref string) error {
	if ref == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.dir, filepath.Base(ref)))
}
