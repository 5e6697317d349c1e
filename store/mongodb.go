package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("store: document not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// CVTopic is the watch name of the CV singleton; collections are watched by their category name.
const CVTopic = "cv"

// CVPath is the id of the CV singleton inside the artifacts collection, scoped by application namespace.
func CVPath(appID string) string {
	return "artifacts/" + appID + "/public/data/cv/mainCV"
}

type DB struct {
	Client       *mongo.Client
	Database     *mongo.Database
	cvID         string
	pollInterval time.Duration
	logger       *slog.Logger
}

func NewMongoDB(ctx context.Context, uri, dbName, cvAppID string, pollInterval time.Duration, logger *slog.Logger) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	logger.Info("connected to mongodb", "db", dbName)
	return &DB{
		Client:       client,
		Database:     client.Database(dbName),
		cvID:         CVPath(cvAppID),
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

func (db *DB) Users() *mongo.Collection {
	return db.Database.Collection("users")
}

func (db *DB) Content(cat models.Category) *mongo.Collection {
	return db.Database.Collection(string(cat))
}

func (db *DB) Artifacts() *mongo.Collection {
	return db.Database.Collection("artifacts")
}

// EnsureIndexes creates a unique index on users.email so signups cannot race into duplicates.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := db.Users().Indexes().CreateOne(ctx, idx)
	return err
}

func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
