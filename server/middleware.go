package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// sessionMiddleware is the authorization gate for session-bound routes. The
// bearer token must be registered and must have been issued to the address
// this request arrived from.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return c.JSON(http.StatusUnauthorized,
				map[string]string{"error": "Ah-ah-ah! You'll need to log in first."})
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth {
			return c.JSON(http.StatusUnauthorized,
				map[string]string{"error": "invalid authorization format"})
		}

		if !s.sessions.Validate(token, c.RealIP()) {
			return c.JSON(http.StatusUnauthorized,
				map[string]string{"error": "Your session has expired, please log in again."})
		}

		userID, ok := s.sessions.UserID(token)
		if !ok {
			return c.JSON(http.StatusUnauthorized,
				map[string]string{"error": "Your session has expired, please log in again."})
		}

		c.Set("session_token", token)
		c.Set("user_id", userID)
		return next(c)
	}
}
