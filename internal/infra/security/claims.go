package security

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"rukorent/internal/domain/session"
)

// ErrTokenExpired is returned for tokens whose exp claim has passed.
var ErrTokenExpired = errors.New("security: token expired")

// Claims is the subset of the Booking API's access token the gateway reads.
type Claims struct {
	UserID string `json:"id"`
	Sub    string `json:"sub"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (c Claims) subject() string {
	if id := strings.TrimSpace(c.UserID); id != "" {
		return id
	}
	return strings.TrimSpace(c.Sub)
}

// SessionResolver derives the caller's session from the bearer token issued by
// the remote API. Signatures are not checked here; the remote API verifies the
// token on every forwarded call.
type SessionResolver struct {
	// HeaderFallback accepts X-User-ID / X-User-Role when the token is opaque.
	HeaderFallback bool
	Now            func() time.Time
	parser         *jwt.Parser
}

func NewSessionResolver(headerFallback bool) *SessionResolver {
	return &SessionResolver{HeaderFallback: headerFallback, parser: jwt.NewParser()}
}

// Resolve returns the session for token. header looks up request headers and
// may be nil.
func (r *SessionResolver) Resolve(token string, header func(string) string) (session.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return session.Session{}, session.ErrUnauthenticated
	}
	claims := &Claims{}
	if _, _, err := r.jwtParser().ParseUnverified(token, claims); err == nil {
		if exp := claims.ExpiresAt; exp != nil && !exp.After(r.now()) {
			return session.Session{}, ErrTokenExpired
		}
		if sub := claims.subject(); sub != "" {
			return session.Session{Token: token, UserID: sub, Role: roleOf(claims.Role)}, nil
		}
	}
	if r.HeaderFallback && header != nil {
		if id := strings.TrimSpace(header("X-User-ID")); id != "" {
			return session.Session{Token: token, UserID: id, Role: roleOf(header("X-User-Role"))}, nil
		}
	}
	return session.Session{Token: token}, nil
}

func (r *SessionResolver) jwtParser() *jwt.Parser {
	if r.parser == nil {
		r.parser = jwt.NewParser()
	}
	return r.parser
}

func (r *SessionResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func roleOf(raw string) session.Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "owner", "pemilik":
		return session.RoleOwner
	case "admin":
		return session.RoleAdmin
	default:
		return session.RoleTenant
	}
}
