package middleware

import (
	"context"
	"errors"
	"sync"

	"rukorent/internal/app/commands"
)

var ErrInFlight = errors.New("middleware: an identical request is already in progress")

// ExclusiveCommand must be implemented by commands that may not run twice
// concurrently for the same key. An empty key opts out.
type ExclusiveCommand interface {
	commands.Command
	ExclusiveKey() string
}

// SingleInFlight rejects a command while another with the same exclusive key
// is still running. Nothing is queued or retried.
func SingleInFlight() CommandMiddleware {
	var (
		mu      sync.Mutex
		running = make(map[string]struct{})
	)
	acquire := func(key string) bool {
		mu.Lock()
		defer mu.Unlock()
		if _, busy := running[key]; busy {
			return false
		}
		running[key] = struct{}{}
		return true
	}
	release := func(key string) {
		mu.Lock()
		defer mu.Unlock()
		delete(running, key)
	}
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			ex, ok := cmd.(ExclusiveCommand)
			if !ok || ex.ExclusiveKey() == "" {
				return next.Dispatch(ctx, cmd)
			}
			key := ex.ExclusiveKey()
			if !acquire(key) {
				return nil, ErrInFlight
			}
			defer release(key)
			return next.Dispatch(ctx, cmd)
		})
	}
}
