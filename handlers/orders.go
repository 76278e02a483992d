package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yourrobotics/backend/middleware"
	"github.com/yourrobotics/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStore is the slice of the store the orders handler needs. Product
// lookups are used to validate line items and to expand them in responses.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	OrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

type OrdersHandler struct {
	DB OrderStore
}

type OrderItemRequest struct {
	Product string `json:"product"`
	Qty     int    `json:"qty"`
}

type CreateOrderRequest struct {
	Products []OrderItemRequest `json:"products"`
}

type OrderItemResponse struct {
	Product *models.Product `json:"product"`
	Qty     int             `json:"qty"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Reference string              `json:"reference"`
	User      string              `json:"user"`
	Products  []OrderItemResponse `json:"products"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Create captures an order for the authenticated caller. Every line item
// must reference an existing product with qty >= 1; the total is computed
// server-side from current prices. Stock is not decremented.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, `{"message":"not authenticated"}`, http.StatusUnauthorized)
		return
	}
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if len(req.Products) == 0 {
		http.Error(w, `{"message":"order must contain at least one product"}`, http.StatusBadRequest)
		return
	}
	items := make([]models.OrderItem, 0, len(req.Products))
	ids := make([]primitive.ObjectID, 0, len(req.Products))
	for _, item := range req.Products {
		if item.Qty < 1 {
			http.Error(w, `{"message":"qty must be at least 1"}`, http.StatusBadRequest)
			return
		}
		id, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			http.Error(w, `{"message":"invalid product id"}`, http.StatusBadRequest)
			return
		}
		items = append(items, models.OrderItem{ProductID: id, Qty: item.Qty})
		ids = append(ids, id)
	}
	products, err := h.DB.ProductsByIDs(r.Context(), ids)
	if err != nil {
		http.Error(w, `{"message":"failed to create order"}`, http.StatusInternalServerError)
		return
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	var total float64
	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			http.Error(w, `{"message":"order references an unknown product"}`, http.StatusBadRequest)
			return
		}
		total += p.Price * float64(item.Qty)
	}
	now := time.Now()
	order := &models.Order{
		Reference: uuid.NewString(),
		UserID:    user.ID,
		Items:     items,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := h.DB.CreateOrder(r.Context(), order)
	if err != nil {
		http.Error(w, `{"message":"failed to create order"}`, http.StatusInternalServerError)
		return
	}
	order.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(orderToResponse(order, byID))
}

// List returns the caller's own orders only, line items expanded with the
// referenced product documents.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, `{"message":"not authenticated"}`, http.StatusUnauthorized)
		return
	}
	orders, err := h.DB.OrdersByUser(r.Context(), user.ID)
	if err != nil {
		http.Error(w, `{"message":"failed to list orders"}`, http.StatusInternalServerError)
		return
	}
	var ids []primitive.ObjectID
	for _, o := range orders {
		for _, item := range o.Items {
			ids = append(ids, item.ProductID)
		}
	}
	byID := make(map[primitive.ObjectID]*models.Product)
	if len(ids) > 0 {
		products, err := h.DB.ProductsByIDs(r.Context(), ids)
		if err != nil {
			http.Error(w, `{"message":"failed to list orders"}`, http.StatusInternalServerError)
			return
		}
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
	}
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderToResponse(&orders[i], byID))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func orderToResponse(o *models.Order, products map[primitive.ObjectID]*models.Product) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		// Product may be nil if it was deleted after the order was placed.
		items = append(items, OrderItemResponse{Product: products[item.ProductID], Qty: item.Qty})
	}
	return OrderResponse{
		ID:        o.ID.Hex(),
		Reference: o.Reference,
		User:      o.UserID.Hex(),
		Products:  items,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
}
