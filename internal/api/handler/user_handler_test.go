package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-system/internal/core/domain"
	"github.com/accounthub/account-system/internal/core/ports"
)

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.UserInput) (*domain.User, error)
	listFn     func(ctx context.Context) ([]domain.User, error)
	getFn      func(ctx context.Context, id string) (*domain.User, error)
	updateFn   func(ctx context.Context, id string, in ports.UserInput) (*domain.User, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubUserService) Register(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, id string, in ports.UserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{ID: "1", Email: "a@x.com"}, {ID: "2", Email: "b@x.com"}}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodGet, "/users/", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) { return nil, nil },
	}
	handler := NewUserHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodGet, "/users/", "")
	_ = handler.List(c)

	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.UserInput) (*domain.User, error) {
			if in.Email != "a@x.com" || in.Gender != "male" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "1", Email: in.Email}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/users/", `{"email":"a@x.com","password":"secret","gender":"male"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_InvalidBody(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.UserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	// bad email and short password both fail request validation
	c, rec := newAuthTestContext(t, http.MethodPost, "/users/", `{"email":"nope","password":"x"}`)
	_ = handler.Create(c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.UserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/users/", `{"email":"a@x.com","password":"secret"}`)
	_ = handler.Create(c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func newUserDetailContext(t *testing.T, method, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, "/users/"+id+"/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newUserDetailContext(t, http.MethodGet, "missing", "")
	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Get_Success(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "a@x.com", PasswordHash: "hash"}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newUserDetailContext(t, http.MethodGet, "1", "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// The password hash must never leak through serialization.
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Update(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, in ports.UserInput) (*domain.User, error) {
			if id != "1" || in.FirstName != "Alice" {
				t.Fatalf("unexpected args: %s %+v", id, in)
			}
			return &domain.User{ID: id, FirstName: in.FirstName}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newUserDetailContext(t, http.MethodPut, "1", `{"first_name":"Alice"}`)
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_NotFound(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, in ports.UserInput) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newUserDetailContext(t, http.MethodPut, "missing", `{"first_name":"x"}`)
	_ = handler.Update(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	handler := NewUserHandler(stub)

	c, rec := newUserDetailContext(t, http.MethodDelete, "1", "")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) error { return domain.ErrUserNotFound },
	}
	handler := NewUserHandler(stub)

	c, rec := newUserDetailContext(t, http.MethodDelete, "missing", "")
	_ = handler.Delete(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
