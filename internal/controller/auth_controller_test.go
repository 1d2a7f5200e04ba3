package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/mindfulpath/backend/internal/dto"
	"github.com/mindfulpath/backend/internal/middleware"
)

type fakeAuthService struct {
	user   *dto.UserResponse
	getErr error
}

func (s *fakeAuthService) Register(req dto.RegisterRequest) (*dto.UserResponse, error) {
	return s.user, nil
}

func (s *fakeAuthService) Login(username, password string) (*dto.UserResponse, error) {
	return s.user, nil
}

func (s *fakeAuthService) GetUser(id uint) (*dto.UserResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

func newAuthRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authController := NewAuthController(svc)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	r.POST("/api/login", authController.Login)
	r.GET("/api/user", middleware.RequireAuth(), authController.Me)
	return r
}

func loginCookies(t *testing.T, router *gin.Engine) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username": "alice", "password": "secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no session cookie")
	}
	return cookies
}

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	svc := &fakeAuthService{user: &dto.UserResponse{ID: 7, Username: "alice", Name: "Alice", Role: "user"}}
	router := newAuthRouter(svc)
	cookies := loginCookies(t, router)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp dto.UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Username != "alice" {
		t.Errorf("username = %q", resp.Username)
	}
}

func TestMeStaleSessionClearsCookie(t *testing.T) {
	svc := &fakeAuthService{user: &dto.UserResponse{ID: 7, Username: "alice", Name: "Alice", Role: "user"}}
	router := newAuthRouter(svc)
	cookies := loginCookies(t, router)

	// The user behind the session is gone by the next request.
	svc.getErr = errors.New("record not found")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "Unauthorized" {
		t.Errorf("message = %q", resp.Message)
	}

	// The dead session must not be left for the client to replay.
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "test_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("stale session cookie was not expired in the response")
	}
}
