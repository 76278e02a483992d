package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yourrobotics/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ContentStore is the slice of the store the CMS handler needs.
type ContentStore interface {
	CreateContent(ctx context.Context, content *models.WebsiteContent) (primitive.ObjectID, error)
	AllContent(ctx context.Context) ([]models.WebsiteContent, error)
	ContentBySection(ctx context.Context, section string) ([]models.WebsiteContent, error)
	ContentByID(ctx context.Context, id primitive.ObjectID) (*models.WebsiteContent, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content *models.WebsiteContent) error
	DeleteContent(ctx context.Context, id primitive.ObjectID) error
}

type ContentHandler struct {
	DB ContentStore
}

type CreateContentRequest struct {
	Section    string `json:"section"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl"`
	ButtonText string `json:"buttonText"`
	ButtonLink string `json:"buttonLink"`
	IsActive   *bool  `json:"isActive"`
	Order      int    `json:"order"`
}

// UpdateContentRequest is an explicit partial update.
type UpdateContentRequest struct {
	Section    *string `json:"section"`
	Title      *string `json:"title"`
	Subtitle   *string `json:"subtitle"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"imageUrl"`
	ButtonText *string `json:"buttonText"`
	ButtonLink *string `json:"buttonLink"`
	IsActive   *bool   `json:"isActive"`
	Order      *int    `json:"order"`
}

// List returns every content block, grouped by section then display order.
// Public; the storefront filters inactive blocks client-side.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	content, err := h.DB.AllContent(r.Context())
	if err != nil {
		http.Error(w, `{"message":"failed to list content"}`, http.StatusInternalServerError)
		return
	}
	if content == nil {
		content = []models.WebsiteContent{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(content)
}

// BySection returns the blocks for one storefront section. Public. An empty
// section is a 404, matching what the storefront expects.
func (h *ContentHandler) BySection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	section := chi.URLParam(r, "section")
	content, err := h.DB.ContentBySection(r.Context(), section)
	if err != nil {
		http.Error(w, `{"message":"failed to fetch content"}`, http.StatusInternalServerError)
		return
	}
	if len(content) == 0 {
		http.Error(w, `{"message":"content not found for this section"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(content)
}

// Create adds a content block. Admin only.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if !models.SectionValid(req.Section) {
		http.Error(w, `{"message":"section must be hero, categories, featured or products"}`, http.StatusBadRequest)
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	now := time.Now()
	content := &models.WebsiteContent{
		Section:    req.Section,
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		ButtonText: req.ButtonText,
		ButtonLink: req.ButtonLink,
		IsActive:   isActive,
		Order:      req.Order,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := h.DB.CreateContent(r.Context(), content)
	if err != nil {
		http.Error(w, `{"message":"failed to create content"}`, http.StatusInternalServerError)
		return
	}
	content.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(content)
}

// Update applies a partial update to a content block. Admin only.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"message":"invalid content id"}`, http.StatusBadRequest)
		return
	}
	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	content, err := h.DB.ContentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, `{"message":"content not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"message":"failed to fetch content"}`, http.StatusInternalServerError)
		return
	}
	if req.Section != nil {
		if !models.SectionValid(*req.Section) {
			http.Error(w, `{"message":"section must be hero, categories, featured or products"}`, http.StatusBadRequest)
			return
		}
		content.Section = *req.Section
	}
	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Subtitle != nil {
		content.Subtitle = *req.Subtitle
	}
	if req.Content != nil {
		content.Content = *req.Content
	}
	if req.ImageURL != nil {
		content.ImageURL = *req.ImageURL
	}
	if req.ButtonText != nil {
		content.ButtonText = *req.ButtonText
	}
	if req.ButtonLink != nil {
		content.ButtonLink = *req.ButtonLink
	}
	if req.IsActive != nil {
		content.IsActive = *req.IsActive
	}
	if req.Order != nil {
		content.Order = *req.Order
	}
	content.UpdatedAt = time.Now()
	if err := h.DB.UpdateContent(r.Context(), id, content); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, `{"message":"content not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"message":"failed to update content"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(content)
}

// Delete removes a content block. Admin only.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"message":"invalid content id"}`, http.StatusBadRequest)
		return
	}
	if err := h.DB.DeleteContent(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, `{"message":"content not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"message":"failed to delete content"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "content deleted successfully"})
}
