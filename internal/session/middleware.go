package session

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

type sessionKey struct{}

// Middleware attaches the session from the cookie, when valid, to the
// operation context. It never rejects; handlers decide with RequireUser.
func (m *Manager) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cookie, err := huma.ReadCookie(ctx, CookieName)
		if err != nil || cookie.Value == "" {
			next(ctx)
			return
		}

		sess, err := m.Parse(cookie.Value)
		if err != nil {
			next(ctx)
			return
		}

		next(Attach(ctx, sess))
	}
}

// Attach returns ctx carrying sess for the rest of the operation.
func Attach(ctx huma.Context, sess *Session) huma.Context {
	return huma.WithValue(ctx, sessionKey{}, sess)
}

// WithSession stores sess on ctx.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext returns the request's session, or nil when logged out.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey{}).(*Session)
	return sess
}

// RequireUser returns the logged in user or a 401 problem.
func RequireUser(ctx context.Context) (uuid.UUID, error) {
	sess := FromContext(ctx)
	if sess == nil {
		return uuid.Nil, huma.Error401Unauthorized("login required")
	}
	return sess.UserID, nil
}
