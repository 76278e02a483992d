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

// ProductStore is the slice of the store the catalog handler needs.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) (primitive.ObjectID, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, product *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ProductStats(ctx context.Context) (*models.ProductStats, error)
}

type ProductsHandler struct {
	DB ProductStore
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	Stock       int             `json:"stock"`
	Discount    models.Discount `json:"discount"`
	Featured    bool            `json:"featured"`
	Currency    string          `json:"currency"`
}

// UpdateProductRequest is an explicit partial update; only set fields are
// applied, and the merged result is re-validated before persisting.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *float64         `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	Images      *[]string        `json:"images"`
	Category    *string          `json:"category"`
	Tags        *[]string        `json:"tags"`
	Stock       *int             `json:"stock"`
	Discount    *models.Discount `json:"discount"`
	Featured    *bool            `json:"featured"`
	Currency    *string          `json:"currency"`
}

// List returns the whole catalog, newest first. Public.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	products, err := h.DB.ListProducts(r.Context())
	if err != nil {
		http.Error(w, `{"message":"failed to list products"}`, http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

// Get fetches one product by id. Public.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"message":"invalid product id"}`, http.StatusBadRequest)
		return
	}
	product, err := h.DB.ProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, `{"message":"product not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"message":"failed to fetch product"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

// Create adds a product to the catalog. Admin only.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	now := time.Now()
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
		Category:    req.Category,
		Tags:        req.Tags,
		Stock:       req.Stock,
		Discount:    req.Discount,
		Featured:    req.Featured,
		Currency:    req.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	product.Normalize()
	if err := product.Validate(); err != nil {
		http.Error(w, `{"message":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	id, err := h.DB.CreateProduct(r.Context(), product)
	if err != nil {
		http.Error(w, `{"message":"failed to create product"}`, http.StatusInternalServerError)
		return
	}
	product.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

// Update applies a partial update to a product. Admin only.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"message":"invalid product id"}`, http.StatusBadRequest)
		return
	}
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	product, err := h.DB.ProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, `{"message":"product not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"message":"failed to fetch product"}`, http.StatusInternalServerError)
		return
	}
	applyProductUpdate(product, &req)
	product.UpdatedAt = time.Now()
	product.Normalize()
	if err := product.Validate(); err != nil {
		http.Error(w, `{"message":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	if err := h.DB.UpdateProduct(r.Context(), id, product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, `{"message":"product not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"message":"failed to update product"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

func applyProductUpdate(p *models.Product, req *UpdateProductRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Discount != nil {
		p.Discount = *req.Discount
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
}

// Delete removes a product. Admin only. Deleting an unknown id is a plain
// 404, first call or repeated.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"message":"invalid product id"}`, http.StatusBadRequest)
		return
	}
	if err := h.DB.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, `{"message":"product not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"message":"failed to delete product"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "product deleted successfully"})
}

// Stats returns the dashboard aggregate. Admin only.
func (h *ProductsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.DB.ProductStats(r.Context())
	if err != nil {
		http.Error(w, `{"message":"failed to compute stats"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
