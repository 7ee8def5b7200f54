package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/internal/models"
)

var (
	ErrDuplicateUser       = errors.New("user already exists")
	ErrAdminLimit          = errors.New("system already has one admin")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrProductNotFound     = errors.New("product not found")
	ErrInternal            = errors.New("internal server error")
)

// AuthTokens is an issued access/refresh pair.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.Role
}

// AuthService orchestrates the register/login/refresh/logout session flow
// and the admin user listing.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)
	// Logout is idempotent and never reports whether the token was valid.
	Logout(ctx context.Context, refreshToken string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
	Status      models.ProductStatus
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
	Status      *models.ProductStatus
}

// ProductService is the ownership-scoped catalog: vendors touch only their
// own products, customers see only active ones.
type ProductService interface {
	CreateProduct(ctx context.Context, vendorID primitive.ObjectID, in CreateProductInput) (*models.Product, error)
	ListVendorProducts(ctx context.Context, vendorID primitive.ObjectID) ([]models.Product, error)
	UpdateProduct(ctx context.Context, vendorID primitive.ObjectID, productID string, in UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, vendorID primitive.ObjectID, productID string) error
	ListActiveProducts(ctx context.Context) ([]models.Product, error)
	GetActiveProduct(ctx context.Context, productID string) (*models.Product, error)
}
