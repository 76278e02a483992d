package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Theme constants for the admin dashboard.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

func ThemeValid(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark || theme == ThemeSystem
}

type NotificationSettings struct {
	NewOrders        bool `bson:"newOrders" json:"newOrders"`
	LowStock         bool `bson:"lowStock" json:"lowStock"`
	CustomerMessages bool `bson:"customerMessages" json:"customerMessages"`
}

// UserSettings holds per-admin store configuration. One document per user,
// created lazily on first read.
type UserSettings struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID   `bson:"userId" json:"userId"`
	StoreName     string               `bson:"storeName,omitempty" json:"storeName,omitempty"`
	StoreEmail    string               `bson:"storeEmail,omitempty" json:"storeEmail,omitempty"`
	StorePhone    string               `bson:"storePhone,omitempty" json:"storePhone,omitempty"`
	StoreAddress  string               `bson:"storeAddress,omitempty" json:"storeAddress,omitempty"`
	Currency      string               `bson:"currency" json:"currency"`
	Logo          string               `bson:"logo,omitempty" json:"logo,omitempty"`
	Theme         string               `bson:"theme" json:"theme"`
	Notifications NotificationSettings `bson:"notifications" json:"notifications"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSettings returns the settings document created on first read.
func DefaultSettings(user *User) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:     user.ID,
		StoreName:  "YourRobotics Store",
		StoreEmail: user.Email,
		Currency:   DefaultCurrency,
		Theme:      ThemeLight,
		Notifications: NotificationSettings{
			NewOrders:        true,
			LowStock:         true,
			CustomerMessages: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
