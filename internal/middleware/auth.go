package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"church-admin/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "current_user"

// Auth verifies the bearer token on every request and resolves the current
// user. Any failure short-circuits with 401 and the FastAPI-compatible
// detail body the mobile client expects.
func Auth(jwtSecret string, users models.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := extractBearerToken(r)
			if err != nil {
				unauthorized(w)
				return
			}

			claims := jwt.MapClaims{}
			_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				unauthorized(w)
				return
			}

			email, _ := claims["sub"].(string)
			if email == "" {
				unauthorized(w)
				return
			}

			user, err := users.GetByID(intClaim(claims, "user_id"))
			if err != nil || user == nil || user.Email != email {
				unauthorized(w)
				return
			}
			if !user.IsActive {
				models.RespondWithError(w, http.StatusBadRequest, "Inactive user")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, or nil on unprotected
// routes.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header")
	}
	return parts[1], nil
}

func intClaim(claims jwt.MapClaims, key string) int {
	if v, ok := claims[key].(float64); ok {
		return int(v)
	}
	return 0
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	models.RespondWithError(w, http.StatusUnauthorized, "Could not validate credentials")
}
