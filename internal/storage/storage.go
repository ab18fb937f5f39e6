package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Package storage contains blob storage abstractions. Blobs live in one flat
// namespace and are addressed by a generated filename; metadata about them is
// kept separately in the document store.

// BlobStore persists uploaded binaries and answers the directory-scan
// questions the stats endpoints ask. Implementations must be safe for
// concurrent use by multiple goroutines.
type BlobStore interface {
	// Save stores the content under a generated name derived from the
	// original filename and returns that name. The original filename is
	// passed through unmodified; see StoredName.
	Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error)

	// List returns the names of all stored blobs whose name ends with one
	// of the given suffixes. Suffix matching is case-sensitive. The listing
	// is re-read from the backend on every call.
	List(ctx context.Context, suffixes ...string) ([]string, error)

	// SizeOf returns the byte size of a single stored blob.
	SizeOf(ctx context.Context, name string) (int64, error)

	// Open returns the blob's content for serving.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// StoredName generates the storage filename for an upload:
// {epochMillis}-{originalName}. Uniqueness is only probabilistic — two
// uploads sharing the same millisecond and original name collide. The
// original name is not sanitized, matching the upstream contract.
func StoredName(originalName string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), originalName)
}

// TotalSize sums the sizes of all blobs matching the given suffixes.
// A blob that disappears between list and stat is skipped rather than
// failing the whole scan.
func TotalSize(ctx context.Context, store BlobStore, suffixes ...string) (int64, error) {
	names, err := store.List(ctx, suffixes...)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, name := range names {
		size, err := store.SizeOf(ctx, name)
		if err != nil {
			continue
		}
		total += size
	}
	return total, nil
}
