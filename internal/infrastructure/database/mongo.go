package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// OpenMongo connects to the document store and verifies the connection.
func OpenMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(database), nil
}

// EnsureIndexes creates the unique constraints the credential store relies
// on. Index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	users := db.Collection("users")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "altEmail", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}
	if _, err := users.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("failed to create user indexes (may already exist)", zap.Error(err))
		return err
	}

	tasks := db.Collection("tasks")
	if _, err := tasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "projectId", Value: 1}},
	}); err != nil {
		logger.Warn("failed to create task index", zap.Error(err))
	}

	logger.Info("document store indexes ensured")
	return nil
}
