package middleware

import (
	"context"

	"rukorent/internal/app/commands"
	"rukorent/internal/app/queries"
	"rukorent/internal/domain/session"
)

// SessionBound is implemented by messages that act on behalf of a logged-in user.
type SessionBound interface {
	CallerSession() session.Session
}

func requireSession(message any) error {
	bound, ok := message.(SessionBound)
	if !ok {
		return nil
	}
	return bound.CallerSession().Require()
}

// Authentication rejects session-bound commands that carry no usable session
// before they reach a handler.
func Authentication() CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if err := requireSession(cmd); err != nil {
				return nil, err
			}
			return next.Dispatch(ctx, cmd)
		})
	}
}

func QueryAuthentication() QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if err := requireSession(q); err != nil {
				return nil, err
			}
			return next.Ask(ctx, q)
		})
	}
}
