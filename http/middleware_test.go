package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	mobymcp "github.com/dylangroos/moby-mcp"
	mobyhttp "github.com/dylangroos/moby-mcp/http"
)

func TestAuthMiddleware_NilGateIsPublic(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	wrapped := mobyhttp.AuthMiddleware(nil, mobyhttp.DefaultExemptPaths)(handler)

	req := httptest.NewRequest("GET", "/files/test.txt", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	// Handler that shouldn't be reached
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	gate := mobymcp.NewGate("secret")
	wrapped := mobyhttp.AuthMiddleware(gate, mobyhttp.DefaultExemptPaths)(handler)

	req := httptest.NewRequest("GET", "/files/test.txt", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	// Handler that shouldn't be reached
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	gate := mobymcp.NewGate("secret")
	wrapped := mobyhttp.AuthMiddleware(gate, mobyhttp.DefaultExemptPaths)(handler)

	req := httptest.NewRequest("GET", "/files/test.txt", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	gate := mobymcp.NewGate("secret")
	wrapped := mobyhttp.AuthMiddleware(gate, mobyhttp.DefaultExemptPaths)(handler)

	req := httptest.NewRequest("GET", "/files/test.txt", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_ExemptPath(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	gate := mobymcp.NewGate("secret")
	wrapped := mobyhttp.AuthMiddleware(gate, []string{"/healthz"})(handler)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
