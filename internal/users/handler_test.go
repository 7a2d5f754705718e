package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newUserRouter(t *testing.T) (*gin.Engine, *Service, func(id string)) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := newTestService()

	var currentUserID string
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if currentUserID != "" {
			c.Set("userId", currentUserID)
		}
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)

	return r, svc, func(id string) { currentUserID = id }
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	r, _, _ := newUserRouter(t)

	resp := postJSON(t, r, "/api/v1/users/register", `{"name":"Maria","email":"maria@example.com","password":"secret1"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var got User
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Email != "maria@example.com" || got.Role != RoleUser {
		t.Fatalf("unexpected user %+v", got)
	}
	if strings.Contains(resp.Body.String(), "PasswordHash") || strings.Contains(resp.Body.String(), "passwordHash") {
		t.Fatalf("password hash leaked in response: %s", resp.Body.String())
	}

	resp = postJSON(t, r, "/api/v1/users/register", `{"name":"Maria","email":"maria@example.com","password":"secret2"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate expected 409, got %d", resp.Code)
	}

	resp = postJSON(t, r, "/api/v1/users/register", `{"name":"M","email":"x@example.com","password":"secret1"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("short name expected 400, got %d", resp.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, svc, _ := newUserRouter(t)
	if _, err := svc.Register(context.Background(), "Maria", "maria@example.com", "secret1"); err != nil {
		t.Fatalf("seed register: %v", err)
	}

	resp := postJSON(t, r, "/api/v1/users/login", `{"email":"maria@example.com","password":"secret1"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var got struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Token == "" {
		t.Fatal("expected token in response")
	}
	if got.User.Email != "maria@example.com" {
		t.Fatalf("unexpected user %+v", got.User)
	}

	resp = postJSON(t, r, "/api/v1/users/login", `{"email":"maria@example.com","password":"wrong"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password expected 401, got %d", resp.Code)
	}
}

func TestOnboardingAndMeEndpoints(t *testing.T) {
	r, svc, setUser := newUserRouter(t)
	user, err := svc.Register(context.Background(), "Maria", "maria@example.com", "secret1")
	if err != nil {
		t.Fatalf("seed register: %v", err)
	}
	setUser(user.ID)

	resp := postJSON(t, r, "/api/v1/users/onboarding", `{"workspaceName":"Lopez Events"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("onboarding expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me expected 200, got %d", rec.Code)
	}
	var got User
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.HasCompletedOnboarding || got.WorkspaceName != "Lopez Events" {
		t.Fatalf("unexpected profile %+v", got)
	}
}
