package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateUser   = errors.New("user already exists")
	ErrAdminExists     = errors.New("an admin account already exists")
	ErrProductNotFound = errors.New("product not found")
)

// UserRepository persists accounts and their refresh-token sets. All
// mutations hit the store directly; there is no in-memory write-behind.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindAdmin returns the single admin account, or ErrUserNotFound.
	FindAdmin(ctx context.Context) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	AddRefreshToken(ctx context.Context, id primitive.ObjectID, tok string) error
	// RemoveRefreshToken removes tok from the user's set and reports
	// whether it was present. The filter matches the exact token, so two
	// concurrent rotations of one token cannot both observe it present.
	// Removing an absent token is a no-op.
	RemoveRefreshToken(ctx context.Context, id primitive.ObjectID, tok string) (bool, error)
}

// ProductUpdate carries the mutable product fields; nil means unchanged.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
	Status      *models.ProductStatus
}

// ProductRepository persists catalog entries. Ownership scoping lives in
// the queries themselves: owned operations filter on both id and vendor,
// and a miss is ErrProductNotFound whether the product is absent or owned
// by someone else.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Product, error)
	UpdateOwned(ctx context.Context, id, vendorID primitive.ObjectID, upd ProductUpdate) (*models.Product, error)
	DeleteOwned(ctx context.Context, id, vendorID primitive.ObjectID) error
	FindActive(ctx context.Context) ([]models.Product, error)
	FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}
