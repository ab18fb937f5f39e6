package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// filesystemStore keeps blobs as plain files in a single flat directory.
// This is the default backend; the directory doubles as the static-serving
// root for the HTTP layer.
type filesystemStore struct {
	dir string
}

// NewFilesystem creates a filesystem-backed blob store rooted at dir,
// creating the directory if it does not exist.
func NewFilesystem(dir string) (BlobStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("content directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create content directory: %w", err)
	}
	return &filesystemStore{dir: dir}, nil
}

func (s *filesystemStore) Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error) {
	name := StoredName(originalName, time.Now())

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create blob %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close blob %s: %w", name, err)
	}
	return name, nil
}

func (s *filesystemStore) List(ctx context.Context, suffixes ...string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read content directory: %w", err)
	}

	names := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if matchesSuffix(e.Name(), suffixes) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *filesystemStore) SizeOf(ctx context.Context, name string) (int64, error) {
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		return 0, fmt.Errorf("stat blob %s: %w", name, err)
	}
	return info.Size(), nil
}

func (s *filesystemStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", name, err)
	}
	return f, nil
}

// matchesSuffix reports whether name ends with one of the suffixes.
// Matching is case-sensitive: "photo.JPG" does not match ".jpg".
func matchesSuffix(name string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
