package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/peopleops/employee-api/internal/api/metrics"
	"github.com/peopleops/employee-api/internal/core/domain"
	"github.com/peopleops/employee-api/internal/core/ports"
)

// Auth extracts the bearer token, verifies it through the token service and
// injects the authenticated principal into the request context. Any
// verification failure short-circuits with 401 before the wrapped handler
// runs; role checks are RBAC's job and happen afterwards.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("bad_scheme").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := verifier.Verify(parts[1])
			if err != nil {
				reason, msg := classifyTokenError(err)
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msg)
			}

			c.Set("username", principal.Username)
			c.Set("role", principal.Role)

			return next(c)
		}
	}
}

func classifyTokenError(err error) (reason, msg string) {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired", "token expired"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed", "token malformed"
	default:
		return "invalid", "invalid token"
	}
}
