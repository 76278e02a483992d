package store

import (
	"context"

	"github.com/yourrobotics/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) SettingsByUser(ctx context.Context, userID primitive.ObjectID) (*models.UserSettings, error) {
	var s models.UserSettings
	err := db.Settings().FindOne(ctx, bson.M{"userId": userID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) CreateSettings(ctx context.Context, settings *models.UserSettings) (primitive.ObjectID, error) {
	res, err := db.Settings().InsertOne(ctx, settings, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) UpdateSettings(ctx context.Context, id primitive.ObjectID, s *models.UserSettings) error {
	update := bson.M{
		"storeName":     s.StoreName,
		"storeEmail":    s.StoreEmail,
		"storePhone":    s.StorePhone,
		"storeAddress":  s.StoreAddress,
		"currency":      s.Currency,
		"logo":          s.Logo,
		"theme":         s.Theme,
		"notifications": s.Notifications,
		"updatedAt":     s.UpdatedAt,
	}
	_, err := db.Settings().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}
