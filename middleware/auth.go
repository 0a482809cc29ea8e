package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/futliga/championship-system/models"
)

type contextKey string

const userContextKey contextKey = "user"

// Имена JWT claims; должны совпадать с тем, что кладёт AuthHandler при логине.
const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

// Authenticate проверяет Bearer-токен и кладёт его claims в контекст запроса.
func Authenticate(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secretKey), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize пропускает запрос только при одной из перечисленных ролей.
// Навешивается после Authenticate.
func Authorize(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole, err := GetUserRoleFromContext(r.Context())
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if role == userRole {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("user claims not found in context")
	}

	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing %q claim in token", jwtClaimUserID)
	}

	// JSON-числа декодируются в float64.
	userIDFloat, ok := userIDClaim.(float64)
	if !ok {
		return 0, fmt.Errorf("invalid type for %q claim: got %T", jwtClaimUserID, userIDClaim)
	}
	if userIDFloat != float64(int(userIDFloat)) {
		return 0, fmt.Errorf("%q claim is not an integer: %f", jwtClaimUserID, userIDFloat)
	}

	userID := int(userIDFloat)
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user ID value in %q claim: %d", jwtClaimUserID, userID)
	}
	return userID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context")
	}

	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing %q claim in token", jwtClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for %q claim: got %T", jwtClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	if !role.Valid() {
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
	return role, nil
}
