package store

import (
	"context"

	"github.com/yourrobotics/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) CreateContent(ctx context.Context, content *models.WebsiteContent) (primitive.ObjectID, error) {
	res, err := db.Content().InsertOne(ctx, content, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// AllContent returns every content block, grouped by section then display
// order.
func (db *DB) AllContent(ctx context.Context) ([]models.WebsiteContent, error) {
	sort := bson.D{{Key: "section", Value: 1}, {Key: "order", Value: 1}}
	cur, err := db.Content().Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var content []models.WebsiteContent
	if err := cur.All(ctx, &content); err != nil {
		return nil, err
	}
	return content, nil
}

func (db *DB) ContentBySection(ctx context.Context, section string) ([]models.WebsiteContent, error) {
	cur, err := db.Content().Find(ctx, bson.M{"section": section},
		options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var content []models.WebsiteContent
	if err := cur.All(ctx, &content); err != nil {
		return nil, err
	}
	return content, nil
}

func (db *DB) UpdateContent(ctx context.Context, id primitive.ObjectID, c *models.WebsiteContent) error {
	update := bson.M{
		"section":    c.Section,
		"title":      c.Title,
		"subtitle":   c.Subtitle,
		"content":    c.Content,
		"imageUrl":   c.ImageURL,
		"buttonText": c.ButtonText,
		"buttonLink": c.ButtonLink,
		"isActive":   c.IsActive,
		"order":      c.Order,
		"updatedAt":  c.UpdatedAt,
	}
	res, err := db.Content().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (db *DB) ContentByID(ctx context.Context, id primitive.ObjectID) (*models.WebsiteContent, error) {
	var c models.WebsiteContent
	if err := db.Content().FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *DB) DeleteContent(ctx context.Context, id primitive.ObjectID) error {
	var c models.WebsiteContent
	return db.Content().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c)
}
