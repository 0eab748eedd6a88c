package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/orius/cartorio-api/internal/api/middleware"
	"github.com/orius/cartorio-api/internal/core/domain"
)

// currentAccount returns the account injected by the Auth middleware.
// Its absence means the route was registered without the middleware.
func currentAccount(c echo.Context) (*domain.Account, error) {
	account, ok := c.Get(middleware.AccountKey).(*domain.Account)
	if !ok || account == nil {
		return nil, domain.ErrUnauthenticated
	}
	return account, nil
}

// bindAndValidate binds the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}
