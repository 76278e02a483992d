package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yourrobotics/backend/middleware"
	"github.com/yourrobotics/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingsStore is the slice of the store the settings handler needs.
type SettingsStore interface {
	SettingsByUser(ctx context.Context, userID primitive.ObjectID) (*models.UserSettings, error)
	CreateSettings(ctx context.Context, settings *models.UserSettings) (primitive.ObjectID, error)
	UpdateSettings(ctx context.Context, id primitive.ObjectID, settings *models.UserSettings) error
}

type SettingsHandler struct {
	DB SettingsStore
}

// UpdateSettingsRequest is an explicit partial update.
type UpdateSettingsRequest struct {
	StoreName     *string                      `json:"storeName"`
	StoreEmail    *string                      `json:"storeEmail"`
	StorePhone    *string                      `json:"storePhone"`
	StoreAddress  *string                      `json:"storeAddress"`
	Currency      *string                      `json:"currency"`
	Logo          *string                      `json:"logo"`
	Theme         *string                      `json:"theme"`
	Notifications *models.NotificationSettings `json:"notifications"`
}

type UpdateThemeRequest struct {
	Theme string `json:"theme"`
}

// loadOrCreate returns the caller's settings, creating the default document
// on first read.
func (h *SettingsHandler) loadOrCreate(ctx context.Context, user *models.User) (*models.UserSettings, error) {
	settings, err := h.DB.SettingsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}
	settings = models.DefaultSettings(user)
	id, err := h.DB.CreateSettings(ctx, settings)
	if err != nil {
		return nil, err
	}
	settings.ID = id
	return settings, nil
}

// Get returns the caller's store settings, creating defaults lazily.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, `{"message":"not authenticated"}`, http.StatusUnauthorized)
		return
	}
	settings, err := h.loadOrCreate(r.Context(), user)
	if err != nil {
		http.Error(w, `{"message":"failed to load settings"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// Update applies a partial update to the caller's settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, `{"message":"not authenticated"}`, http.StatusUnauthorized)
		return
	}
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Theme != nil && !models.ThemeValid(*req.Theme) {
		http.Error(w, `{"message":"invalid theme value"}`, http.StatusBadRequest)
		return
	}
	settings, err := h.loadOrCreate(r.Context(), user)
	if err != nil {
		http.Error(w, `{"message":"failed to load settings"}`, http.StatusInternalServerError)
		return
	}
	if req.StoreName != nil {
		settings.StoreName = *req.StoreName
	}
	if req.StoreEmail != nil {
		settings.StoreEmail = *req.StoreEmail
	}
	if req.StorePhone != nil {
		settings.StorePhone = *req.StorePhone
	}
	if req.StoreAddress != nil {
		settings.StoreAddress = *req.StoreAddress
	}
	if req.Currency != nil {
		settings.Currency = *req.Currency
	}
	if req.Logo != nil {
		settings.Logo = *req.Logo
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}
	settings.UpdatedAt = time.Now()
	if err := h.DB.UpdateSettings(r.Context(), settings.ID, settings); err != nil {
		http.Error(w, `{"message":"failed to update settings"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// UpdateTheme sets only the dashboard theme preference.
func (h *SettingsHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, `{"message":"not authenticated"}`, http.StatusUnauthorized)
		return
	}
	var req UpdateThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if !models.ThemeValid(req.Theme) {
		http.Error(w, `{"message":"invalid theme value"}`, http.StatusBadRequest)
		return
	}
	settings, err := h.loadOrCreate(r.Context(), user)
	if err != nil {
		http.Error(w, `{"message":"failed to load settings"}`, http.StatusInternalServerError)
		return
	}
	settings.Theme = req.Theme
	settings.UpdatedAt = time.Now()
	if err := h.DB.UpdateSettings(r.Context(), settings.ID, settings); err != nil {
		http.Error(w, `{"message":"failed to update settings"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"theme": settings.Theme})
}
