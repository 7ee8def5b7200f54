package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"marketplace-api/internal/models"
	"marketplace-api/internal/repository"
)

func newProductService(t *testing.T) ProductService {
	t.Helper()
	return NewProductService(repository.NewMemoryProductRepo(), zap.NewNop().Sugar())
}

func createProduct(t *testing.T, svc ProductService, vendor primitive.ObjectID, name string, status models.ProductStatus) *models.Product {
	t.Helper()
	p, err := svc.CreateProduct(context.Background(), vendor, CreateProductInput{
		Name:        name,
		Description: "desc",
		Price:       9.99,
		Category:    "misc",
		Stock:       3,
		Status:      status,
	})
	require.NoError(t, err)
	return p
}

func TestCreateProductDefaultsToActive(t *testing.T) {
	svc := newProductService(t)
	vendor := primitive.NewObjectID()

	p := createProduct(t, svc, vendor, "widget", "")
	assert.Equal(t, models.ProductActive, p.Status)
	assert.Equal(t, vendor, p.Vendor)
	assert.False(t, p.ID.IsZero())
}

func TestListVendorProductsIsScoped(t *testing.T) {
	svc := newProductService(t)
	v1 := primitive.NewObjectID()
	v2 := primitive.NewObjectID()
	createProduct(t, svc, v1, "mine", models.ProductActive)
	createProduct(t, svc, v2, "theirs", models.ProductActive)

	mine, err := svc.ListVendorProducts(context.Background(), v1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Name)
}

func TestUpdateProductByOwner(t *testing.T) {
	svc := newProductService(t)
	vendor := primitive.NewObjectID()
	p := createProduct(t, svc, vendor, "widget", models.ProductActive)

	name := "renamed"
	price := 19.99
	updated, err := svc.UpdateProduct(context.Background(), vendor, p.ID.Hex(), UpdateProductInput{
		Name:  &name,
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, 19.99, updated.Price)
	// untouched fields kept
	assert.Equal(t, "desc", updated.Description)
}

func TestCrossVendorUpdateLooksLikeMissing(t *testing.T) {
	svc := newProductService(t)
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	p := createProduct(t, svc, owner, "widget", models.ProductActive)

	name := "stolen"
	_, errOther := svc.UpdateProduct(context.Background(), intruder, p.ID.Hex(), UpdateProductInput{Name: &name})
	_, errMissing := svc.UpdateProduct(context.Background(), intruder, primitive.NewObjectID().Hex(), UpdateProductInput{Name: &name})

	assert.ErrorIs(t, errOther, ErrProductNotFound)
	assert.ErrorIs(t, errMissing, ErrProductNotFound)
	assert.Equal(t, errOther, errMissing)
}

func TestCrossVendorDeleteLooksLikeMissing(t *testing.T) {
	svc := newProductService(t)
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	p := createProduct(t, svc, owner, "widget", models.ProductActive)

	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), intruder, p.ID.Hex()), ErrProductNotFound)

	// still there for the owner
	mine, err := svc.ListVendorProducts(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, svc.DeleteProduct(context.Background(), owner, p.ID.Hex()))
	mine, err = svc.ListVendorProducts(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestMalformedProductIDLooksLikeMissing(t *testing.T) {
	svc := newProductService(t)
	vendor := primitive.NewObjectID()

	_, err := svc.GetActiveProduct(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), vendor, "not-an-id"), ErrProductNotFound)
}

func TestCustomerSeesOnlyActiveProducts(t *testing.T) {
	svc := newProductService(t)
	vendor := primitive.NewObjectID()
	active := createProduct(t, svc, vendor, "visible", models.ProductActive)
	hidden := createProduct(t, svc, vendor, "hidden", models.ProductInactive)

	list, err := svc.ListActiveProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "visible", list[0].Name)

	got, err := svc.GetActiveProduct(context.Background(), active.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	// Inactive detail lookup is a 404-shaped miss, not a forbidden.
	_, err = svc.GetActiveProduct(context.Background(), hidden.ID.Hex())
	assert.ErrorIs(t, err, ErrProductNotFound)
}
