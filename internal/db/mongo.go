package db

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 15 * time.Second

type NewMongoDatabaseParams struct {
	URI    string
	DBName string
}

// NewMongoDatabase dials mongo and returns the client together with the
// database handle. The client is a process-wide shared resource, the caller
// owns its lifecycle (see Server.GracefulShutdown).
func NewMongoDatabase(ctx context.Context, params NewMongoDatabaseParams) (*mongo.Client, *mongo.Database, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(params.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		log.Warnf("failed to ping mongo: %s", err)
	}

	return client, client.Database(params.DBName), nil
}
