// Package token implements the identity token service. Tokens are stateless
// HS256 JWTs carrying the caller-supplied claim payload verbatim plus a bounded
// lifetime; nothing is persisted server-side.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "shaadi/pkg/domain-errors"
)

// DefaultTTL matches the issuance policy: tokens live for one hour.
const DefaultTTL = time.Hour

// Claims is the decoded identity claim extracted from a verified token.
// Email is the only field the rest of the system interprets; Payload carries
// the caller-supplied mapping unmodified (minus the registered claims the
// service stamps itself).
type Claims struct {
	Email     string
	Payload   map[string]any
	ExpiresAt time.Time
}

// Service issues and verifies signed identity tokens.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTTL overrides the default token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock sets the clock function for testability.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a token service signing with the given secret.
func New(signingKey string, opts ...Option) *Service {
	s := &Service{
		signingKey: []byte(signingKey),
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs the caller-supplied payload into a bearer token. The payload is
// embedded as-is; only the registered lifetime claims are stamped on top.
func (s *Service) Issue(payload map[string]any) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["exp"] = jwt.NewNumericDate(now.Add(s.ttl))
	claims["iat"] = jwt.NewNumericDate(now)
	claims["jti"] = uuid.NewString()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign token")
	}
	return signed, nil
}

// Verify parses and validates a token, returning the embedded claim. It fails
// with an unauthorized domain error when the token is malformed, carries a bad
// signature, or has expired.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "unauthorized access")
	}

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "unauthorized access")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "unauthorized access")
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "unauthorized access")
	}

	return fromMapClaims(mapClaims), nil
}

func fromMapClaims(mc jwt.MapClaims) *Claims {
	claims := &Claims{Payload: make(map[string]any, len(mc))}

	for k, v := range mc {
		switch k {
		case "exp", "iat", "jti":
			// stamped by the service, not part of the caller payload
		default:
			claims.Payload[k] = v
		}
	}
	if email, ok := mc["email"].(string); ok {
		claims.Email = email
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims
}
