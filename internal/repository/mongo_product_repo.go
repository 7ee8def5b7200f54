package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-api/internal/models"
)

type mongoProductRepo struct {
	col *mongo.Collection
}

func NewMongoProductRepo(db *mongo.Database, collection string) (ProductRepository, error) {
	col := db.Collection(collection)
	_, err := col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "vendor", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create product indexes: %w", err)
	}
	return &mongoProductRepo{col: col}, nil
}

func (r *mongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *mongoProductRepo) FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Product, error) {
	return r.find(ctx, bson.M{"vendor": vendorID})
}

func (r *mongoProductRepo) FindActive(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{"status": models.ProductActive})
}

func (r *mongoProductRepo) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepo) UpdateOwned(ctx context.Context, id, vendorID primitive.ObjectID, upd ProductUpdate) (*models.Product, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	// The vendor is part of the filter: a product owned by another vendor
	// is indistinguishable from a missing one.
	var p models.Product
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "vendor": vendorID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProductRepo) DeleteOwned(ctx context.Context, id, vendorID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "vendor": vendorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepo) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id, "status": models.ProductActive}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
