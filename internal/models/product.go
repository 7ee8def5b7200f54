package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStatus controls customer visibility: only active products appear
// in customer listings and detail lookups.
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

func ParseProductStatus(s string) (ProductStatus, bool) {
	switch ProductStatus(s) {
	case ProductActive, ProductInactive:
		return ProductStatus(s), true
	}
	return "", false
}

// Product is a catalog entry owned by exactly one vendor. All vendor-side
// mutations are scoped by the Vendor field at the query level.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Stock       int                `bson:"stock" json:"stock"`
	Status      ProductStatus      `bson:"status" json:"status"`
	Vendor      primitive.ObjectID `bson:"vendor" json:"vendor"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
