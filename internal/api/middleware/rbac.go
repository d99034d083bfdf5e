package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// RequireAdmin rejects callers whose token does not carry the admin flag.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, _ := c.Get("is_admin").(bool)
			if !isAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireCompleteRegistration rejects callers still in the pending_profile
// step. The status check here uses the token snapshot; services re-check the
// persisted status before anything irreversible, so a stale token can only
// produce a false rejection, never a false acceptance.
func RequireCompleteRegistration() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			status, _ := c.Get("registration_status").(string)
			if status != domain.RegistrationComplete {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "registration incomplete"})
			}
			return next(c)
		}
	}
}
