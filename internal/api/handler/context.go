package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// ctxAuth builds the caller's AuthContext from the claims injected by the
// Auth middleware and performs a fast-fail check before any service call:
// a missing user_id means the middleware did not run (or the token carries no
// identity), so the request is rejected with 401 before touching a service.
func ctxAuth(c echo.Context) (domain.AuthContext, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return domain.AuthContext{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	isAdmin, _ := c.Get("is_admin").(bool)
	status, _ := c.Get("registration_status").(string)

	return domain.AuthContext{
		UserID:             userID,
		IsAdmin:            isAdmin,
		RegistrationStatus: status,
	}, nil
}
