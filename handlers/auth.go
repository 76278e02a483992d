package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/yourrobotics/backend/middleware"
	"github.com/yourrobotics/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the store the auth handler needs.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

type AuthHandler struct {
	DB        UserStore
	JWTSecret string
	AdminCode string
}

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AdminCode string `json:"adminCode"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

func summary(u *models.User) UserSummary {
	return UserSummary{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: u.Role}
}

// Register creates a regular user and issues a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleCustomer)
}

// RegisterAdmin creates an admin user, gated on the shared admin code.
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleAdmin)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, role string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, `{"message":"name, email and password required"}`, http.StatusBadRequest)
		return
	}
	if role == models.RoleAdmin {
		// Admin code is checked before anything is persisted.
		if h.AdminCode == "" || req.AdminCode != h.AdminCode {
			http.Error(w, `{"message":"invalid admin code"}`, http.StatusUnauthorized)
			return
		}
	}
	existing, err := h.DB.UserByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, `{"message":"failed to register"}`, http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, `{"message":"user with this email already exists"}`, http.StatusConflict)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, `{"message":"failed to register"}`, http.StatusInternalServerError)
		return
	}
	now := time.Now()
	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := h.DB.CreateUser(r.Context(), user)
	if err != nil {
		// The unique index may beat the lookup above under concurrent
		// registration.
		if mongo.IsDuplicateKeyError(err) {
			http.Error(w, `{"message":"user with this email already exists"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"message":"failed to register"}`, http.StatusInternalServerError)
		return
	}
	user.ID = id
	token, err := middleware.NewToken(h.JWTSecret, user)
	if err != nil {
		http.Error(w, `{"message":"could not create token"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(AuthResponse{Token: token, User: summary(user)})
}

// Login verifies credentials and issues a token valid for 24 hours.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, `{"message":"email and password required"}`, http.StatusBadRequest)
		return
	}
	user, err := h.DB.UserByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, `{"message":"login failed"}`, http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, `{"message":"invalid credentials"}`, http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		http.Error(w, `{"message":"invalid credentials"}`, http.StatusUnauthorized)
		return
	}
	token, err := middleware.NewToken(h.JWTSecret, user)
	if err != nil {
		http.Error(w, `{"message":"could not create token"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AuthResponse{Token: token, User: summary(user)})
}

// AdminCheck reports whether the current token grants the admin role.
// Runs behind Auth; the role decision happens here, not in RequireAdmin,
// so a non-admin gets a 403 with a JSON body rather than a bare gate.
func (h *AuthHandler) AdminCheck(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, `{"message":"not authenticated"}`, http.StatusUnauthorized)
		return
	}
	if !user.IsAdmin() {
		http.Error(w, `{"message":"not authorized as admin"}`, http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "user is admin",
		"user":    summary(user),
	})
}
