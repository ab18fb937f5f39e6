package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jotter/internal/model"
	"jotter/internal/repository"
)

// NoteMongo is a MongoDB implementation of repository.NoteRepository.
type NoteMongo struct {
	coll *mongo.Collection
}

// NewNoteMongo creates a new NoteMongo repository over the notes collection.
func NewNoteMongo(db *mongo.Database) *NoteMongo {
	return &NoteMongo{coll: db.Collection(repository.NotesCollection)}
}

var _ repository.NoteRepository = (*NoteMongo)(nil)

// Create inserts a note and returns it with the assigned ObjectID.
func (r *NoteMongo) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	note.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, note); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

// List returns notes matching the optional createdAt range.
// Order is whatever the store returns; callers must not rely on it.
func (r *NoteMongo) List(ctx context.Context, filter *repository.DateRange) ([]model.Note, error) {
	query := bson.M{}
	if filter != nil {
		query["createdAt"] = bson.M{
			"$gte": filter.Start,
			"$lt":  filter.End,
		}
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]model.Note, 0)
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

// Count returns the number of notes.
func (r *NoteMongo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}

// ContentBytes sums $strLenBytes of header and description over all notes.
// $strLenBytes counts UTF-8 bytes, matching the size semantics the stats
// endpoint reports.
func (r *NoteMongo) ContentBytes(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.D{
			{Key: "size", Value: bson.D{
				{Key: "$add", Value: bson.A{
					bson.D{{Key: "$strLenBytes", Value: "$header"}},
					bson.D{{Key: "$strLenBytes", Value: "$description"}},
				}},
			}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalSize", Value: bson.D{{Key: "$sum", Value: "$size"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate note size: %w", err)
	}
	defer cursor.Close(ctx)

	var out []struct {
		TotalSize int64 `bson:"totalSize"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("decode note size: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].TotalSize, nil
}
