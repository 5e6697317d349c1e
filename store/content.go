package store

import (
	"context"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertItem stores a new item and returns its id. The id is assigned here when empty.
func (db *DB) InsertItem(ctx context.Context, cat models.Category, item *models.Item) (string, error) {
	doc := *item
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}
	if _, err := db.Content(cat).InsertOne(ctx, &doc, options.InsertOne()); err != nil {
		return "", translate(err)
	}
	return doc.ID, nil
}

// Items returns every item in the collection, oldest first.
func (db *DB) Items(ctx context.Context, cat models.Category) ([]models.Item, error) {
	cur, err := db.Content(cat).Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	items := []models.Item{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (db *DB) Item(ctx context.Context, cat models.Category, id string) (*models.Item, error) {
	var item models.Item
	if err := db.Content(cat).FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// UpdateItem replaces the editable fields of an item and stamps updatedAt.
func (db *DB) UpdateItem(ctx context.Context, cat models.Category, id string, item *models.Item) error {
	updatedAt := time.Now().UTC()
	if item.UpdatedAt != nil {
		updatedAt = *item.UpdatedAt
	}
	update := bson.M{
		"title_en":       item.TitleEN,
		"title_no":       item.TitleNO,
		"image_en":       item.ImageEN,
		"image_no":       item.ImageNO,
		"description_en": item.DescriptionEN,
		"description_no": item.DescriptionNO,
		"updatedAt":      updatedAt,
	}
	if item.Author != nil {
		update["author"] = item.Author
	}
	res, err := db.Content(cat).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteItem(ctx context.Context, cat models.Category, id string) error {
	res, err := db.Content(cat).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
