package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/yourrobotics/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const userKey contextKey = "user"

// UserFinder resolves a token subject to a live user record.
type UserFinder interface {
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Auth resolves the bearer token to a user and attaches it to the request
// context. Requests with a missing, malformed or expired token, or whose
// user has been deleted since issuance, get a 401.
func Auth(jwtSecret string, users UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				http.Error(w, `{"message":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, `{"message":"invalid authorization format"}`, http.StatusUnauthorized)
				return
			}
			claims, err := ParseToken(jwtSecret, parts[1])
			if err != nil {
				http.Error(w, `{"message":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}
			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				http.Error(w, `{"message":"invalid token subject"}`, http.StatusUnauthorized)
				return
			}
			user, err := users.UserByID(r.Context(), userID)
			if err != nil {
				http.Error(w, `{"message":"authentication failed"}`, http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Error(w, `{"message":"not authorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin gates a route on the admin role. Must run after Auth. The
// role is read from the freshly loaded user, not the token claims.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, `{"message":"not authenticated"}`, http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin() {
			http.Error(w, `{"message":"not authorized as admin"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
