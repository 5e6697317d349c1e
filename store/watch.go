package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Watch calls notify whenever a document under topic changes, until ctx is cancelled.
// topic is a category name or CVTopic. ready runs once the change stream is open, so a
// reload done after it cannot miss a change. Servers without change streams are polled,
// and so is a stream that fails later.
func (db *DB) Watch(ctx context.Context, topic string, ready, notify func()) error {
	coll, pipeline := db.watchTarget(topic)
	stream, err := coll.Watch(ctx, pipeline, options.ChangeStream())
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		db.logger.Warn("change streams unavailable, polling instead",
			"topic", topic, "interval", db.pollInterval, "error", err)
		signal(ready)
		return poll(ctx, db.pollInterval, notify)
	}
	defer stream.Close(context.Background())
	signal(ready)

	for stream.Next(ctx) {
		notify()
	}
	if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) && ctx.Err() == nil {
		db.logger.Warn("change stream failed, polling instead",
			"topic", topic, "interval", db.pollInterval, "error", err)
		// The gap between the failure and the first tick is covered by an immediate reload.
		notify()
		return poll(ctx, db.pollInterval, notify)
	}
	return nil
}

func signal(ready func()) {
	if ready != nil {
		ready()
	}
}

func (db *DB) watchTarget(topic string) (*mongo.Collection, mongo.Pipeline) {
	if topic == CVTopic {
		match := bson.D{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: db.cvID}}}}
		return db.Artifacts(), mongo.Pipeline{match}
	}
	return db.Database.Collection(topic), mongo.Pipeline{}
}

func poll(ctx context.Context, interval time.Duration, notify func()) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			notify()
		}
	}
}
