package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ContextKeyDoctorID is where the authenticated doctor id lives on the echo
// context.
const ContextKeyDoctorID = "doctor_id"

// RequireDoctor validates the bearer session token and stores the doctor id
// on the context.
func RequireDoctor(gate *Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}
			claims, err := gate.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}
			c.Set(ContextKeyDoctorID, claims.DoctorID)
			return next(c)
		}
	}
}

// DoctorID returns the authenticated doctor id, if any.
func DoctorID(c echo.Context) string {
	id, _ := c.Get(ContextKeyDoctorID).(string)
	return id
}
