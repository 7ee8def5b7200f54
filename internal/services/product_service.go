package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"marketplace-api/internal/models"
	"marketplace-api/internal/repository"
)

type productService struct {
	products repository.ProductRepository
	log      *zap.SugaredLogger
}

func NewProductService(products repository.ProductRepository, log *zap.SugaredLogger) ProductService {
	return &productService{products: products, log: log}
}

func (s *productService) CreateProduct(ctx context.Context, vendorID primitive.ObjectID, in CreateProductInput) (*models.Product, error) {
	status := in.Status
	if status == "" {
		status = models.ProductActive
	}
	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		Status:      status,
		Vendor:      vendorID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.log.Infow("product created", "product", p.ID.Hex(), "vendor", vendorID.Hex())
	return p, nil
}

func (s *productService) ListVendorProducts(ctx context.Context, vendorID primitive.ObjectID) ([]models.Product, error) {
	return s.products.FindByVendor(ctx, vendorID)
}

func (s *productService) UpdateProduct(ctx context.Context, vendorID primitive.ObjectID, productID string, in UpdateProductInput) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	p, err := s.products.UpdateOwned(ctx, id, vendorID, repository.ProductUpdate{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		Status:      in.Status,
	})
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (s *productService) DeleteProduct(ctx context.Context, vendorID primitive.ObjectID, productID string) error {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrProductNotFound
	}
	if err := s.products.DeleteOwned(ctx, id, vendorID); err != nil {
		if err == repository.ErrProductNotFound {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	s.log.Infow("product deleted", "product", productID, "vendor", vendorID.Hex())
	return nil
}

func (s *productService) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.FindActive(ctx)
}

func (s *productService) GetActiveProduct(ctx context.Context, productID string) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	p, err := s.products.FindActiveByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}
