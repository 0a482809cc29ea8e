package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futliga/championship-system/models"
)

const testSecret = "test-secret-key"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func protectedHandler(t *testing.T, gotUserID *int, gotRole *models.UserRole) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		role, err := GetUserRoleFromContext(r.Context())
		require.NoError(t, err)
		*gotUserID = userID
		*gotRole = role
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatePassesClaimsToContext(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"user_id": 42,
		"role":    string(models.RoleOrganizer),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	var gotUserID int
	var gotRole models.UserRole
	handler := Authenticate(testSecret)(protectedHandler(t, &gotUserID, &gotRole))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, gotUserID)
	assert.Equal(t, models.RoleOrganizer, gotRole)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{
			"expired token",
			"Bearer " + signedToken(t, jwt.MapClaims{
				"user_id": 42,
				"role":    string(models.RoleUser),
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthorizeEnforcesRoles(t *testing.T) {
	makeRequest := func(role models.UserRole, allowed ...models.UserRole) int {
		token := signedToken(t, jwt.MapClaims{
			"user_id": 1,
			"role":    string(role),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		handler := Authenticate(testSecret)(Authorize(allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, makeRequest(models.RoleAdmin, models.RoleAdmin, models.RoleOrganizer))
	assert.Equal(t, http.StatusOK, makeRequest(models.RoleOrganizer, models.RoleAdmin, models.RoleOrganizer))
	assert.Equal(t, http.StatusForbidden, makeRequest(models.RoleUser, models.RoleAdmin, models.RoleOrganizer))
}
