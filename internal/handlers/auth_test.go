package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ana",
		"email":    "Ana@Example.com",
		"password": "correct-horse",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var registered struct {
		Token string `json:"token"`
		User  struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, w, &registered)

	if registered.Token == "" {
		t.Error("expected a token in the register response")
	}
	if registered.User.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %q", registered.User.Email)
	}

	// Same address, different case, still taken.
	w = doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Imposter",
		"email":    "ANA@example.com",
		"password": "another-pass",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ana@example.com",
		"password": "correct-horse",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad password, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "short",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/api/trips", "", nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/api/trips", "not-a-jwt", nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d: %s", w.Code, w.Body.String())
	}
}
