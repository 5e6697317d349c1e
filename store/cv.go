package store

import (
	"context"

	"github.com/kevinaaaquil/portfolio/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CV returns the singleton CV document. A stored empty object decodes to an empty CV, not ErrNotFound.
func (db *DB) CV(ctx context.Context) (*models.CV, error) {
	var cv models.CV
	if err := db.Artifacts().FindOne(ctx, bson.M{"_id": db.cvID}).Decode(&cv); err != nil {
		return nil, translate(err)
	}
	return &cv, nil
}

// PutCV replaces the singleton wholesale, creating it when missing.
func (db *DB) PutCV(ctx context.Context, cv *models.CV) error {
	_, err := db.Artifacts().ReplaceOne(ctx, bson.M{"_id": db.cvID}, cv, options.Replace().SetUpsert(true))
	return err
}
