package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Section constants name the storefront placements a content block can
// render into.
const (
	SectionHero       = "hero"
	SectionCategories = "categories"
	SectionFeatured   = "featured"
	SectionProducts   = "products"
)

var ValidSections = []string{SectionHero, SectionCategories, SectionFeatured, SectionProducts}

func SectionValid(section string) bool {
	for _, s := range ValidSections {
		if s == section {
			return true
		}
	}
	return false
}

type WebsiteContent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Section    string             `bson:"section" json:"section"`
	Title      string             `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle   string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Content    string             `bson:"content,omitempty" json:"content,omitempty"`
	ImageURL   string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ButtonText string             `bson:"buttonText,omitempty" json:"buttonText,omitempty"`
	ButtonLink string             `bson:"buttonLink,omitempty" json:"buttonLink,omitempty"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	Order      int                `bson:"order" json:"order"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
