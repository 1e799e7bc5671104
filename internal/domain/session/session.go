package session

import (
	"errors"
	"strings"
)

// ErrUnauthenticated means the caller has to log in (again) before continuing.
var ErrUnauthenticated = errors.New("session: authentication required")

type Role string

const (
	RoleTenant Role = "tenant"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

// Session is the caller identity handed explicitly to operations that talk to
// the remote API on the user's behalf. Token is the bearer token the remote API
// issued at login; it is forwarded verbatim and never verified here.
type Session struct {
	Token  string
	UserID string
	Role   Role
}

// Require returns ErrUnauthenticated unless both a token and a user are known.
func (s Session) Require() error {
	if strings.TrimSpace(s.Token) == "" || strings.TrimSpace(s.UserID) == "" {
		return ErrUnauthenticated
	}
	return nil
}
