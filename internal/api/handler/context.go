package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty role proves
// the middleware ran.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)
	return domain.Identity{Username: username, Role: role}, nil
}
