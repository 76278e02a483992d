package store

import (
	"context"

	"github.com/yourrobotics/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) CreateProduct(ctx context.Context, product *models.Product) (primitive.ObjectID, error) {
	res, err := db.Products().InsertOne(ctx, product, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) ListProducts(ctx context.Context) ([]models.Product, error) {
	cur, err := db.Products().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (db *DB) ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := db.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct replaces the mutable fields of a product with the merged
// document. Returns mongo.ErrNoDocuments if the product no longer exists.
func (db *DB) UpdateProduct(ctx context.Context, id primitive.ObjectID, p *models.Product) error {
	update := bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"imageUrl":    p.ImageURL,
		"images":      p.Images,
		"category":    p.Category,
		"tags":        p.Tags,
		"stock":       p.Stock,
		"isInStock":   p.IsInStock,
		"discount":    p.Discount,
		"featured":    p.Featured,
		"currency":    p.Currency,
		"updatedAt":   p.UpdatedAt,
	}
	res, err := db.Products().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (db *DB) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	var p models.Product
	return db.Products().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
}

// ProductStats computes the admin dashboard summary. Nothing is cached;
// every call hits the collection.
func (db *DB) ProductStats(ctx context.Context) (*models.ProductStats, error) {
	total, err := db.Products().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	outOfStock, err := db.Products().CountDocuments(ctx, bson.M{"isInStock": false})
	if err != nil {
		return nil, err
	}
	discounted, err := db.Products().CountDocuments(ctx, bson.M{"discount.type": bson.M{"$ne": models.DiscountNone}})
	if err != nil {
		return nil, err
	}
	cur, err := db.Products().Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(5))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	recent := []models.Product{}
	if err := cur.All(ctx, &recent); err != nil {
		return nil, err
	}
	return &models.ProductStats{
		TotalProducts:      total,
		OutOfStockProducts: outOfStock,
		DiscountedProducts: discounted,
		RecentProducts:     recent,
	}, nil
}

func (db *DB) ProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	cur, err := db.Products().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductsMatchingKeywords finds products whose name matches any of the
// keywords, case-insensitively. Used by the chat assistant.
func (db *DB) ProductsMatchingKeywords(ctx context.Context, keywords []string) ([]models.Product, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	or := make([]bson.M, 0, len(keywords))
	for _, k := range keywords {
		or = append(or, bson.M{"name": bson.M{"$regex": k, "$options": "i"}})
	}
	cur, err := db.Products().Find(ctx, bson.M{"$or": or})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
