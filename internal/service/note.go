package service

import (
	"context"
	"fmt"
	"time"

	"jotter/internal/model"
	"jotter/internal/repository"
)

// CreateNoteInput is the request payload for note creation. Favourite, Type
// and CreatedAt may be supplied by the client; absent values get defaults.
type CreateNoteInput struct {
	Header      string     `json:"header"`
	Description string     `json:"description"`
	Favourite   *bool      `json:"favourite"`
	Type        string     `json:"type"`
	CreatedAt   *time.Time `json:"createdAt"`
}

// NoteService defines the use cases for notes. Notes are create-and-list
// only; no update or delete exists.
type NoteService interface {
	// Create validates the input, applies defaults and inserts the note.
	Create(ctx context.Context, input CreateNoteInput) (*model.Note, error)

	// List returns notes, optionally restricted to one UTC calendar day.
	// date is either empty or formatted YYYY-MM-DD.
	List(ctx context.Context, date string) ([]model.Note, error)
}

type noteService struct {
	repo repository.NoteRepository
}

// NewNoteService constructs a new NoteService.
func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo}
}

func (s *noteService) Create(ctx context.Context, input CreateNoteInput) (*model.Note, error) {
	note := &model.Note{
		Header:      input.Header,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
		Favourite:   false,
		Type:        "general",
	}
	if input.Favourite != nil {
		note.Favourite = *input.Favourite
	}
	if input.Type != "" {
		note.Type = input.Type
	}
	if input.CreatedAt != nil {
		note.CreatedAt = input.CreatedAt.UTC()
	}

	if verr := note.Validate(); verr != nil {
		return nil, verr
	}

	return s.repo.Create(ctx, note)
}

func (s *noteService) List(ctx context.Context, date string) ([]model.Note, error) {
	var filter *repository.DateRange
	if date != "" {
		start, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", date, err)
		}
		// [D 00:00:00.000Z, D 23:59:59.999Z) in UTC, millisecond precision.
		filter = &repository.DateRange{
			Start: start,
			End:   start.Add(24*time.Hour - time.Millisecond),
		}
	}
	return s.repo.List(ctx, filter)
}
