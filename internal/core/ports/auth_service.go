package ports

import (
	"context"

	"github.com/peopleops/employee-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// TokenVerifier checks a compact signed token and returns the principal it
// encodes. Failures are one of domain.ErrTokenExpired, ErrTokenMalformed
// or ErrTokenInvalid.
type TokenVerifier interface {
	Verify(token string) (*domain.Principal, error)
}

// LoginThrottle limits login attempts per username within a fixed window.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
}
