package repository

import (
	"context"
	"time"

	"jotter/internal/model"
)

// Package repository contains data access abstractions for the metadata
// store. Implementations live in subpackages (mongodb) inside this directory.

// Collection names in the metadata store. Notes and the two file-record
// kinds are independent; there are no cross-references between them.
const (
	NotesCollection  = "notes"
	PdfsCollection   = "pdf-records"
	ImagesCollection = "image-records"
)

// DateRange restricts notes by createdAt. Start is inclusive, End exclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NoteRepository defines data access for notes. No business logic here —
// strictly persistence operations.
type NoteRepository interface {
	// Create inserts a new note and returns it with its assigned identity.
	Create(ctx context.Context, note *model.Note) (*model.Note, error)

	// List returns notes, optionally restricted to a createdAt range.
	// A nil filter lists everything. Result order is store-defined; no
	// explicit sort is applied.
	List(ctx context.Context, filter *DateRange) ([]model.Note, error)

	// Count returns the total number of notes.
	Count(ctx context.Context) (int64, error)

	// ContentBytes sums the byte length of header plus description across
	// all notes. Byte length of the encoded text, not character count.
	ContentBytes(ctx context.Context) (int64, error)
}

// FileRepository defines data access for one file-record collection.
// The same implementation backs both pdf-records and image-records.
type FileRepository interface {
	// Create inserts a new file record and returns it with its identity.
	Create(ctx context.Context, rec *model.FileRecord) (*model.FileRecord, error)

	// List returns all records in store-defined order.
	List(ctx context.Context) ([]model.FileRecord, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int64, error)
}

// StatsRepository exposes administrative figures from the store engine.
type StatsRepository interface {
	// DatabaseSizeBytes reports the engine's total stored data size for the
	// whole database, as-is.
	DatabaseSizeBytes(ctx context.Context) (int64, error)
}
