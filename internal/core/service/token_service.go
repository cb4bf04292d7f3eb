package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peopleops/employee-api/internal/core/domain"
)

const defaultTokenTTL = 30 * time.Minute

// TokenService issues and verifies HS256-signed bearer tokens. Tokens are
// stateless: verification checks the signature and expiry only, there is no
// server-side session or revocation list. A token carries subject, role,
// issued-at and expiry; once expired the client must log in again (no
// refresh flow).
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the given subject and role, valid for
// the configured duration.
func (s *TokenService) Issue(username, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify decodes and validates a token, returning the principal it encodes.
// Failures are classified: domain.ErrTokenMalformed when the token is not
// parseable, domain.ErrTokenExpired when past expiry, domain.ErrTokenInvalid
// for signature or claim problems.
func (s *TokenService) Verify(token string) (*domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenInvalid
		}
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	username, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if username == "" || !domain.ValidRole(role) {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Principal{Username: username, Role: role}, nil
}
