package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Staff restricts a route to accounts with the staff flag. It must run
// after Auth, which injects is_staff into the context.
func Staff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if staff, _ := c.Get("is_staff").(bool); !staff {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
