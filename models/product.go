package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discount kinds for a product.
const (
	DiscountNone       = "none"
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

const DefaultCurrency = "৳"

type Discount struct {
	Type  string  `bson:"type" json:"type"`
	Value float64 `bson:"value" json:"value"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	IsInStock   bool               `bson:"isInStock" json:"isInStock"`
	Discount    Discount           `bson:"discount" json:"discount"`
	Featured    bool               `bson:"featured" json:"featured"`
	Currency    string             `bson:"currency" json:"currency"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the catalog invariants on the fully merged product.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Category == "" {
		return errors.New("category is required")
	}
	if p.Price < 0 {
		return errors.New("price must not be negative")
	}
	if p.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	switch p.Discount.Type {
	case DiscountNone, DiscountFixed:
	case DiscountPercentage:
		if p.Discount.Value > 100 {
			return errors.New("percentage discount must not exceed 100")
		}
	default:
		return errors.New("discount type must be none, percentage or fixed")
	}
	if p.Discount.Value < 0 {
		return errors.New("discount value must not be negative")
	}
	return nil
}

// Normalize recomputes derived fields before persisting. isInStock is a
// view of the stock count, never independently settable.
func (p *Product) Normalize() {
	p.IsInStock = p.Stock > 0
	if p.Discount.Type == "" {
		p.Discount.Type = DiscountNone
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
}

// ProductStats is the admin dashboard aggregate, computed on every call.
type ProductStats struct {
	TotalProducts      int64     `json:"totalProducts"`
	OutOfStockProducts int64     `json:"outOfStockProducts"`
	DiscountedProducts int64     `json:"discountedProducts"`
	RecentProducts     []Product `json:"recentProducts"`
}
