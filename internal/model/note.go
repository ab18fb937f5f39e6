package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is a plain text note. Notes are created once and never mutated or
// deleted by the API; identity is assigned by the store at insert time.
type Note struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Header      string             `bson:"header" json:"header"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	Favourite   bool               `bson:"favourite" json:"favourite"`
	Type        string             `bson:"type" json:"type"`
}

// Validate checks the note's required fields before insert.
// Returns nil on success, otherwise the first field violation.
func (n *Note) Validate() *ValidationError {
	if n.Header == "" {
		return &ValidationError{Field: "header", Reason: "is required"}
	}
	if n.Description == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}
	return nil
}
