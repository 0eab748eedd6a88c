package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orius/cartorio-api/internal/api/middleware"
	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/internal/core/ports"
)

type stubAccountService struct {
	createFn func(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error)
	loginFn  func(ctx context.Context, email, password string) (*domain.AccessToken, error)
	getFn    func(ctx context.Context, id int64) (*domain.Account, error)
	listFn   func(ctx context.Context, skip, limit int) (*domain.Page[*domain.Account], error)
	updateFn func(ctx context.Context, id int64, in ports.UpdateAccountInput) (*domain.Account, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubAccountService) Authenticate(context.Context, string, string) (*domain.Account, error) {
	return nil, errors.New("not used")
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (*domain.AccessToken, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) Create(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, in)
}

func (s *stubAccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) List(ctx context.Context, skip, limit int) (*domain.Page[*domain.Account], error) {
	return s.listFn(ctx, skip, limit)
}

func (s *stubAccountService) Update(ctx context.Context, id int64, in ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubAccountService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func newTestContext(method, target, contentType, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
	return out
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != code {
		t.Fatalf("expected echo.HTTPError %d, got %v", code, err)
	}
}

func TestAccountHandler_Signup_Success(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(_ context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
			if in.FullName != "Ana Souza" || in.Email != "a@b.com" || in.Password != "s3cret" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Account{ID: 1, FullName: in.FullName, Email: in.Email}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/users/signup", echo.MIMEApplicationJSON,
		`{"fullName":"Ana Souza","email":"a@b.com","password":"s3cret"}`)

	if err := NewAccountHandler(stub).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	body := decode(t, rec)
	if body["id"] != float64(1) || body["fullName"] != "Ana Souza" || body["email"] != "a@b.com" {
		t.Fatalf("unexpected payload: %+v", body)
	}
	if _, leaked := body["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAccountHandler_Signup_MissingField(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(context.Context, ports.CreateAccountInput) (*domain.Account, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	c, _ := newTestContext(http.MethodPost, "/users/signup", echo.MIMEApplicationJSON, `{"email":"a@b.com","password":"x"}`)

	err := NewAccountHandler(stub).Signup(c)
	expectHTTPError(t, err, http.StatusBadRequest)
	if !strings.Contains(err.Error(), "fullName is required") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestAccountHandler_Signup_PropagatesDomainErrors(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(context.Context, ports.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	c, _ := newTestContext(http.MethodPost, "/users/signup", echo.MIMEApplicationJSON,
		`{"fullName":"Ana","email":"a@b.com","password":"x"}`)

	if err := NewAccountHandler(stub).Signup(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountHandler_Login_JSONAndForm(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(_ context.Context, email, password string) (*domain.AccessToken, error) {
			if email != "a@b.com" || password != "pw" {
				return nil, domain.ErrInvalidCredentials
			}
			return &domain.AccessToken{Token: "jwt", TokenType: "bearer"}, nil
		},
	}
	h := NewAccountHandler(stub)

	form := url.Values{"username": {"a@b.com"}, "password": {"pw"}}.Encode()
	requests := map[string][2]string{
		"json": {echo.MIMEApplicationJSON, `{"username":"a@b.com","password":"pw"}`},
		"form": {echo.MIMEApplicationForm, form},
	}

	for name, r := range requests {
		t.Run(name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/users/login", r[0], r[1])
			if err := h.Login(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			body := decode(t, rec)
			if body["access_token"] != "jwt" || body["token_type"] != "bearer" {
				t.Fatalf("unexpected payload: %+v", body)
			}
		})
	}
}

func TestAccountHandler_Login_Failures(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(_ context.Context, email, _ string) (*domain.AccessToken, error) {
			if email == "locked@b.com" {
				return nil, domain.ErrTooManyAttempts
			}
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAccountHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/users/login", echo.MIMEApplicationJSON, `{"username":"a@b.com","password":"bad"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	c, _ = newTestContext(http.MethodPost, "/users/login", echo.MIMEApplicationJSON, `{"username":"locked@b.com","password":"bad"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	c, _ = newTestContext(http.MethodPost, "/users/login", echo.MIMEApplicationJSON, `{"username":"a@b.com"}`)
	expectHTTPError(t, h.Login(c), http.StatusBadRequest)
}

func TestAccountHandler_Me(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/users/me", "", "")
	c.Set(middleware.AccountKey, &domain.Account{ID: 5, FullName: "Ana", Email: "a@b.com", PasswordHash: "h"})

	if err := NewAccountHandler(&stubAccountService{}).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := decode(t, rec)
	if body["id"] != float64(5) || len(body) != 3 {
		t.Fatalf("unexpected payload: %+v", body)
	}

	c, _ = newTestContext(http.MethodGet, "/users/me", "", "")
	if err := NewAccountHandler(&stubAccountService{}).Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without middleware, got %v", err)
	}
}

func TestAccountHandler_List(t *testing.T) {
	cpf := "123.456.789-00"
	stub := &stubAccountService{
		listFn: func(_ context.Context, skip, limit int) (*domain.Page[*domain.Account], error) {
			if skip != 20 || limit != 5 {
				t.Fatalf("unexpected paging: %d %d", skip, limit)
			}
			return &domain.Page[*domain.Account]{
				Total: 21, Skip: skip, Limit: limit,
				Items: []*domain.Account{{ID: 21, FullName: "Ana", Email: "a@b.com", Profile: domain.AccountProfile{CPF: &cpf, ReadOnly: true}}},
			}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/users?skip=20&limit=5", "", "")

	if err := NewAccountHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := decode(t, rec)
	if body["total"] != float64(21) || body["skip"] != float64(20) || body["limit"] != float64(5) {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("unexpected data: %+v", body["data"])
	}
	item := data[0].(map[string]any)
	if item["cpf"] != cpf || item["readOnly"] != true || item["fullName"] != "Ana" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestAccountHandler_List_InvalidPaging(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(context.Context, int, int) (*domain.Page[*domain.Account], error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}

	for _, target := range []string{"/users?skip=-1", "/users?limit=101", "/users?limit=abc"} {
		c, _ := newTestContext(http.MethodGet, target, "", "")
		expectHTTPError(t, NewAccountHandler(stub).List(c), http.StatusBadRequest)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	stub := &stubAccountService{
		getFn: func(_ context.Context, id int64) (*domain.Account, error) {
			if id == 404 {
				return nil, domain.ErrAccountNotFound
			}
			return &domain.Account{ID: id, FullName: "Ana", Email: "a@b.com"}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/", "", "")
	if err := h.Get(withID(c, "3")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if decode(t, rec)["id"] != float64(3) {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}

	c, _ = newTestContext(http.MethodGet, "/", "", "")
	if err := h.Get(withID(c, "404")); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	c, _ = newTestContext(http.MethodGet, "/", "", "")
	expectHTTPError(t, h.Get(withID(c, "abc")), http.StatusBadRequest)
}

func TestAccountHandler_Update(t *testing.T) {
	stub := &stubAccountService{
		updateFn: func(_ context.Context, id int64, in ports.UpdateAccountInput) (*domain.Account, error) {
			if in.Email != nil || in.Password != nil || in.FullName == nil || *in.FullName != "Ana Lima" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Account{ID: id, FullName: *in.FullName, Email: "a@b.com"}, nil
		},
	}
	c, rec := newTestContext(http.MethodPut, "/", echo.MIMEApplicationJSON, `{"fullName":"Ana Lima"}`)

	if err := NewAccountHandler(stub).Update(withID(c, "8")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if decode(t, rec)["fullName"] != "Ana Lima" {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestAccountHandler_Delete(t *testing.T) {
	deleted := map[int64]bool{}
	stub := &stubAccountService{
		deleteFn: func(_ context.Context, id int64) error {
			if deleted[id] {
				return domain.ErrAccountNotFound
			}
			deleted[id] = true
			return nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/", "", "")
	if err := h.Delete(withID(c, "2")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d %q", rec.Code, rec.Body.String())
	}

	c, _ = newTestContext(http.MethodDelete, "/", "", "")
	if err := h.Delete(withID(c, "2")); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on repeat, got %v", err)
	}
}
