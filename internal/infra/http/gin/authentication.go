package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"rukorent/internal/domain/session"
	"rukorent/internal/infra/security"
)

const sessionContextKey = "rukorent.session"

const loginRedirect = "/login"

// SessionResolver turns a bearer token into the caller's session.
type SessionResolver interface {
	Resolve(token string, header func(string) string) (session.Session, error)
}

type AuthMiddleware struct {
	Resolver SessionResolver
	Logger   *slog.Logger
}

// Handle attaches the caller's session when a usable bearer token is present.
// Routes that need one reject the request themselves.
func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Resolver == nil {
		c.Next()
		return
	}
	sess, err := m.Resolver.Resolve(token, c.GetHeader)
	if err != nil {
		if !errors.Is(err, security.ErrTokenExpired) && m.Logger != nil {
			m.Logger.Debug("token not usable", "error", err)
		}
		c.Next()
		return
	}
	c.Set(sessionContextKey, sess)
	c.Next()
}

func currentSession(c *gin.Context) (session.Session, bool) {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return session.Session{}, false
	}
	sess, ok := val.(session.Session)
	return sess, ok
}

// requireSession writes 401 with a login redirect when no complete session is
// attached to the request.
func requireSession(c *gin.Context) (session.Session, bool) {
	sess, ok := currentSession(c)
	if !ok || sess.Require() != nil {
		renderUnauthenticated(c)
		return session.Session{}, false
	}
	return sess, true
}

func renderUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again.", "redirect": loginRedirect})
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
