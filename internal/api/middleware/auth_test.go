package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orius/cartorio-api/internal/core/domain"
)

type stubResolver struct {
	account *domain.Account
	err     error
	got     string
}

func (s *stubResolver) Resolve(_ context.Context, token string) (*domain.Account, error) {
	s.got = token
	return s.account, s.err
}

func runAuth(t *testing.T, header string, resolver *stubResolver) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(resolver)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return c, called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	resolver := &stubResolver{account: &domain.Account{ID: 42, Email: "a@b.com"}}

	c, called, err := runAuth(t, "Bearer abc.def.ghi", resolver)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if resolver.got != "abc.def.ghi" {
		t.Fatalf("resolver received %q", resolver.got)
	}

	acc, ok := c.Get(AccountKey).(*domain.Account)
	if !ok || acc.ID != 42 {
		t.Fatalf("account not set on echo context: %v", c.Get(AccountKey))
	}
	fromCtx, ok := domain.AccountFromContext(c.Request().Context())
	if !ok || fromCtx.ID != 42 {
		t.Fatalf("account not set on request context")
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	resolver := &stubResolver{account: &domain.Account{ID: 1}}

	if _, called, err := runAuth(t, "bearer tok", resolver); err != nil || !called {
		t.Fatalf("expected success, got err=%v called=%v", err, called)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := map[string]struct {
		header string
		err    error
		want   error
	}{
		"missing header":    {header: "", want: domain.ErrUnauthenticated},
		"basic scheme":      {header: "Basic dXNlcjpwdw==", want: domain.ErrUnauthenticated},
		"no token":          {header: "Bearer ", want: domain.ErrUnauthenticated},
		"resolver rejects":  {header: "Bearer x", err: domain.ErrUnauthenticated, want: domain.ErrUnauthenticated},
		"bad subject":       {header: "Bearer x", err: domain.ErrInvalidSubject, want: domain.ErrInvalidSubject},
		"storage unhealthy": {header: "Bearer x", err: errors.New("db down")},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, called, err := runAuth(t, tc.header, &stubResolver{err: tc.err})
			if called {
				t.Fatalf("next must not be called")
			}
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}
