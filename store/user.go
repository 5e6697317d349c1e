package store

import (
	"context"
	"errors"

	"github.com/kevinaaaquil/portfolio/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserByEmail returns nil, nil when no user has the address.
func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err = translate(err); errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) CreateUser(ctx context.Context, user *models.User) (string, error) {
	doc := *user
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}
	if _, err := db.Users().InsertOne(ctx, &doc, options.InsertOne()); err != nil {
		return "", translate(err)
	}
	return doc.ID, nil
}
