package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yourrobotics/backend/models"
)

// TokenTTL is how long an issued token stays valid. Expiry is strict
// wall-clock, no skew tolerance.
const TokenTTL = 24 * time.Hour

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewToken signs a session token for the user, expiring TokenTTL from now.
func NewToken(jwtSecret string, user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ParseToken verifies signature and expiry and returns the claims. Whether
// the referenced user still exists is the Auth middleware's concern.
func ParseToken(jwtSecret, raw string, opts ...jwt.ParserOption) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
