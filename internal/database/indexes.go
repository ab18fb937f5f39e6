package database

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type indexStep struct {
	Collection string
	Model      mongo.IndexModel
}

var steps = []indexStep{
	{
		Collection: "notes",
		Model:      mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	},
	{
		Collection: "pdf-records",
		Model:      mongo.IndexModel{Keys: bson.D{{Key: "uploadedAt", Value: 1}}},
	},
	{
		Collection: "image-records",
		Model:      mongo.IndexModel{Keys: bson.D{{Key: "uploadedAt", Value: 1}}},
	},
}

// EnsureIndexes provisions the per-collection indexes at startup.
// Index creation is idempotent on the server side, so this runs on every
// boot. Failures are reported to the caller; they are not fatal to startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	start := time.Now()

	logJSON(map[string]any{
		"component": "database",
		"event":     "index_check",
		"status":    "starting",
	})

	for _, s := range steps {
		if _, err := db.Collection(s.Collection).Indexes().CreateOne(ctx, s.Model); err != nil {
			logJSON(map[string]any{
				"component":  "database",
				"event":      "index_check",
				"status":     "failed",
				"collection": s.Collection,
				"error":      err.Error(),
			})
			return err
		}
	}

	logJSON(map[string]any{
		"component":   "database",
		"event":       "index_check",
		"status":      "completed",
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// logJSON writes a single-line JSON log entry for bootstrap events.
func logJSON(fields map[string]any) {
	fields["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if b, err := json.Marshal(fields); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
