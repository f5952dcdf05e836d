package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"graintrade/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func protected(calledUser *string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		uid, _ := r.Context().Value(globals.UserIDKey).(string)
		*calledUser = uid
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticate(t *testing.T) {
	var called string
	handler := Authenticate(protected(&called))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad format", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		handler(rec, req, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "user", -time.Minute))
		handler(rec, req, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "u42", "user", time.Hour))
		handler(rec, req, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u42", called)
	})
}

func TestAdminOnly(t *testing.T) {
	var called string
	handler := AdminOnly(protected(&called))

	t.Run("regular user forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "user", time.Hour))
		handler(rec, req, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", "admin", time.Hour))
		handler(rec, req, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin", called)
	})
}

func TestValidateJWT(t *testing.T) {
	claims, err := ValidateJWT("Bearer " + signToken(t, "u7", "user", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "u7", claims.UserID)

	_, err = ValidateJWT("")
	assert.Error(t, err)
}
