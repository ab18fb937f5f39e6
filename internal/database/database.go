package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"jotter/internal/config"
)

// NewMongo connects to the metadata store once at process start.
//
// A reachability failure is logged and the database handle is still returned:
// the HTTP layer must come up even when the store is down, and individual
// requests fail with a store error until it becomes reachable (the driver
// reconnects on its own). Only a malformed URI is a hard error.
func NewMongo(ctx context.Context, c config.MongoConfig) (*mongo.Database, error) {
	timeout := time.Duration(c.ConnectTimeoutSec) * time.Second

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(c.URI).
		SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logJSON(map[string]any{
			"component": "database",
			"event":     "mongo_ping_failed",
			"error":     err.Error(),
			"detail":    "continuing startup; requests will fail until the store is reachable",
		})
	} else {
		logJSON(map[string]any{
			"component": "database",
			"event":     "mongo_connected",
			"database":  c.Database,
		})
	}

	return client.Database(c.Database), nil
}
