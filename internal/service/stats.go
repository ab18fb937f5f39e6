package service

import (
	"context"
	"fmt"

	"jotter/internal/repository"
	"jotter/internal/storage"
)

// Suffixes counted by the blob scans. Matching is case-sensitive, so an
// uploaded "photo.JPG" is stored and served but never counted.
var (
	pdfSuffixes   = []string{".pdf"}
	imageSuffixes = []string{".jpg", ".jpeg", ".png", ".gif"}
)

// ResourceStats is the response shape for per-resource statistics.
type ResourceStats struct {
	Count     int64  `json:"count"`
	TotalSize string `json:"totalSize"`
}

// DatabaseStats is the response shape for the store-engine size figure.
type DatabaseStats struct {
	TotalSize string `json:"totalSize"`
}

// StatsService produces read-only aggregate reports. It holds no state of
// its own; every call re-reads the store and the blob listing.
//
// Pdf and image totals come from a directory scan over everything matching
// the extension, not a join with the metadata — stray files in the content
// directory are counted.
type StatsService interface {
	NoteStats(ctx context.Context) (*ResourceStats, error)
	PdfStats(ctx context.Context) (*ResourceStats, error)
	ImageStats(ctx context.Context) (*ResourceStats, error)
	DatabaseStats(ctx context.Context) (*DatabaseStats, error)
}

type statsService struct {
	notes  repository.NoteRepository
	pdfs   repository.FileRepository
	images repository.FileRepository
	admin  repository.StatsRepository
	blobs  storage.BlobStore
}

// NewStatsService constructs a StatsService over the three collections and
// the blob store.
func NewStatsService(
	notes repository.NoteRepository,
	pdfs repository.FileRepository,
	images repository.FileRepository,
	admin repository.StatsRepository,
	blobs storage.BlobStore,
) StatsService {
	return &statsService{notes: notes, pdfs: pdfs, images: images, admin: admin, blobs: blobs}
}

func (s *statsService) NoteStats(ctx context.Context) (*ResourceStats, error) {
	count, err := s.notes.Count(ctx)
	if err != nil {
		return nil, err
	}
	size, err := s.notes.ContentBytes(ctx)
	if err != nil {
		return nil, err
	}
	return &ResourceStats{Count: count, TotalSize: formatSize(size)}, nil
}

func (s *statsService) PdfStats(ctx context.Context) (*ResourceStats, error) {
	return s.fileStats(ctx, s.pdfs, pdfSuffixes)
}

func (s *statsService) ImageStats(ctx context.Context) (*ResourceStats, error) {
	return s.fileStats(ctx, s.images, imageSuffixes)
}

func (s *statsService) fileStats(ctx context.Context, repo repository.FileRepository, suffixes []string) (*ResourceStats, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	size, err := storage.TotalSize(ctx, s.blobs, suffixes...)
	if err != nil {
		return nil, err
	}
	return &ResourceStats{Count: count, TotalSize: formatSize(size)}, nil
}

func (s *statsService) DatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	size, err := s.admin.DatabaseSizeBytes(ctx)
	if err != nil {
		return nil, err
	}
	return &DatabaseStats{TotalSize: formatSize(size)}, nil
}

// formatSize renders a byte count divided by 1024, two decimals, labelled
// "MB". The divisor makes the number kibibytes, so the label is wrong, but
// upstream clients consume this exact string; keep it verbatim.
func formatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024)
}
