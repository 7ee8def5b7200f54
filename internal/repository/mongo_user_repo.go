package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-api/internal/models"
)

type mongoUserRepo struct {
	col *mongo.Collection
}

// NewMongoUserRepo wires the users collection. The unique email index
// rejects duplicate registrations and the partial unique index on role
// enforces the single-admin invariant at write time, so neither depends
// on an application-level pre-check winning a race. Both invariants
// hinge on the indexes existing, so a failed creation aborts startup.
func NewMongoUserRepo(db *mongo.Database, collection string) (UserRepository, error) {
	col := db.Collection(collection)
	_, err := col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
			Options: options.Index().
				SetName("single_admin").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"role": models.RoleAdmin}),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create user indexes: %w", err)
	}
	return &mongoUserRepo{col: col}, nil
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.RefreshTokens == nil {
		u.RefreshTokens = []models.RefreshToken{}
	}
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		var we mongo.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					if strings.Contains(e.Message, "single_admin") {
						return ErrAdminExists
					}
					return ErrDuplicateUser
				}
			}
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) FindAdmin(ctx context.Context) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"role": models.RoleAdmin}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepo) AddRefreshToken(ctx context.Context, id primitive.ObjectID, tok string) error {
	now := time.Now().UTC()
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"refresh_tokens": models.RefreshToken{Token: tok, CreatedAt: now}},
		"$set":  bson.M{"updated_at": now},
	})
	return err
}

func (r *mongoUserRepo) RemoveRefreshToken(ctx context.Context, id primitive.ObjectID, tok string) (bool, error) {
	// Filter includes the token itself: compare-and-delete, so rotation
	// consumes a token at most once.
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "refresh_tokens.token": tok},
		bson.M{
			"$pull": bson.M{"refresh_tokens": bson.M{"token": tok}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
