package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
	return s.registerFn(ctx, email, password, fullName, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubUsers struct {
	findByIDFn  func(ctx context.Context, id string) (*domain.User, error)
	listFn      func(ctx context.Context) ([]domain.User, error)
	setActiveFn func(ctx context.Context, id string, active bool) error
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubUsers) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (s *stubUsers) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUsers) SetActive(ctx context.Context, id string, active bool) error {
	return s.setActiveFn(ctx, id, active)
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
			if email != "alice@example.com" || fullName != "Alice Stone" {
				t.Fatalf("unexpected args: %s %s", email, fullName)
			}
			if role != domain.RoleCustomer {
				t.Fatalf("self-registration must always create a customer, got %s", role)
			}
			return &domain.User{ID: "u1", Email: email, FullName: fullName, Role: role, IsActive: true}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUsers{}, time.Hour)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"correct-horse","full_name":"Alice Stone"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" || user["role"] != "customer" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, &stubUsers{}, time.Hour)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"correct-horse","full_name":"Bob"}`)

	_ = handler.Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUsers{}, time.Hour)

	c, _ := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"short","full_name":"Bob"}`)

	err := handler.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 validation error, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "token123", &domain.User{ID: "u1", Email: email, Role: domain.RoleManager, IsActive: true}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUsers{}, time.Hour)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret-pass"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}

	cookieSet := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == authCookie && ck.Value == "token123" && ck.HttpOnly {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Fatalf("login must set the HttpOnly session cookie")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, &stubUsers{}, time.Hour)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong-pass"}`)

	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("failure body must not reveal why: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InactiveAccount(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserInactive
		},
	}
	handler := NewAuthHandler(stub, &stubUsers{}, time.Hour)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret-pass"}`)

	_ = handler.Login(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	users := &stubUsers{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("unexpected id %q", id)
			}
			return &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin, IsActive: true}, nil
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, users, time.Hour)

	c, rec := newJSONContext(t, http.MethodGet, "/v1/auth/me", "")
	c.Set("user_id", "u1")
	c.Set("role", "admin")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice@example.com") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, &stubUsers{}, time.Hour)

	c, _ := newJSONContext(t, http.MethodGet, "/v1/auth/me", "")

	err := handler.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Logout_Idempotent(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, &stubUsers{}, time.Hour)

	for i := 0; i < 2; i++ {
		c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/logout", "")
		if err := handler.Logout(c); err != nil {
			t.Fatalf("logout %d error: %v", i, err)
		}
		if rec.Code != http.StatusNoContent {
			t.Fatalf("logout %d: expected 204, got %d", i, rec.Code)
		}

		expired := false
		for _, ck := range rec.Result().Cookies() {
			if ck.Name == authCookie && ck.MaxAge < 0 {
				expired = true
			}
		}
		if !expired {
			t.Fatalf("logout %d must expire the session cookie", i)
		}
	}
}
