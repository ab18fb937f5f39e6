package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"jotter/internal/repository"
)

// StatsMongo reports administrative figures from the store engine.
type StatsMongo struct {
	db *mongo.Database
}

// NewStatsMongo creates a StatsMongo over the whole database.
func NewStatsMongo(db *mongo.Database) *StatsMongo {
	return &StatsMongo{db: db}
}

var _ repository.StatsRepository = (*StatsMongo)(nil)

// DatabaseSizeBytes runs dbStats and returns its dataSize figure as-is.
// The figure covers the whole database, not a single collection.
func (r *StatsMongo) DatabaseSizeBytes(ctx context.Context) (int64, error) {
	var out struct {
		DataSize float64 `bson:"dataSize"`
	}
	err := r.db.RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("dbStats: %w", err)
	}
	return int64(out.DataSize), nil
}
