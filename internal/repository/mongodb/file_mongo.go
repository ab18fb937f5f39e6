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

// FileMongo is a MongoDB implementation of repository.FileRepository.
// One instance is created per collection (pdf-records, image-records).
type FileMongo struct {
	coll *mongo.Collection
}

// NewFileMongo creates a FileMongo repository over the named collection.
func NewFileMongo(db *mongo.Database, collection string) *FileMongo {
	return &FileMongo{coll: db.Collection(collection)}
}

var _ repository.FileRepository = (*FileMongo)(nil)

// Create inserts a file record and returns it with the assigned ObjectID.
func (r *FileMongo) Create(ctx context.Context, rec *model.FileRecord) (*model.FileRecord, error) {
	rec.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.coll.Name(), err)
	}
	return rec, nil
}

// List returns all records in store-defined order.
func (r *FileMongo) List(ctx context.Context) ([]model.FileRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	recs := make([]model.FileRecord, 0)
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	return recs, nil
}

// Count returns the number of records.
func (r *FileMongo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.coll.Name(), err)
	}
	return n, nil
}
