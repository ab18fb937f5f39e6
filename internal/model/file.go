package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileRecord is the metadata document for an uploaded blob. PDFs and images
// share this shape but live in separate collections. URL is the publicly
// reachable address of the stored blob, derived from the upload request.
type FileRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	URL        string             `bson:"url" json:"url"`
	UploadedAt time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}

// Validate checks the record's required fields before insert.
func (f *FileRecord) Validate() *ValidationError {
	if f.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if f.URL == "" {
		return &ValidationError{Field: "url", Reason: "is required"}
	}
	return nil
}
