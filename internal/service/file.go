package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"jotter/internal/model"
	"jotter/internal/repository"
	"jotter/internal/storage"
)

var ErrReaderNil = errors.New("reader is nil")

// FileService defines the use cases for one uploaded-file kind. Two
// instances exist, one over pdf-records and one over image-records; the
// behavior is identical.
type FileService interface {
	// Upload stores the content in the blob store, then inserts a
	// FileRecord whose URL points at the stored blob. The blob write is not
	// rolled back if the insert fails; the orphaned blob is accepted.
	// baseURL is scheme://host of the inbound request.
	Upload(ctx context.Context, r io.Reader, originalName string, size int64, baseURL string) (*model.FileRecord, error)

	// List returns all records for this kind.
	List(ctx context.Context) ([]model.FileRecord, error)
}

type fileService struct {
	blobs      storage.BlobStore
	repo       repository.FileRepository
	publicPath string
}

// NewFileService constructs a FileService. publicPath is the URL path
// prefix blobs are served under (e.g. "/uploads").
func NewFileService(blobs storage.BlobStore, repo repository.FileRepository, publicPath string) FileService {
	return &fileService{blobs: blobs, repo: repo, publicPath: publicPath}
}

func (s *fileService) Upload(ctx context.Context, r io.Reader, originalName string, size int64, baseURL string) (*model.FileRecord, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	stored, err := s.blobs.Save(ctx, originalName, r, size)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	rec := &model.FileRecord{
		Name:       originalName,
		URL:        baseURL + s.publicPath + "/" + stored,
		UploadedAt: time.Now().UTC(),
	}
	if verr := rec.Validate(); verr != nil {
		return nil, verr
	}

	return s.repo.Create(ctx, rec)
}

func (s *fileService) List(ctx context.Context) ([]model.FileRecord, error) {
	return s.repo.List(ctx)
}
