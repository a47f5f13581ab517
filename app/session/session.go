// Package session gives every shopper their own application state, keyed by
// a cookie.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peakhub/storefront/app/api"
	"github.com/peakhub/storefront/logger"
	"github.com/peakhub/storefront/state"
)

const CookieName = "pph_session"

// DefaultIdleTimeout is how long an unused session stays in memory. Its cart
// stays in the slot and is reloaded on the next request.
const DefaultIdleTimeout = 30 * time.Minute

// SlotKey is the storage key holding a session's cart.
func SlotKey(sessionID string) string {
	return "session:" + sessionID + ":" + state.CartKey
}

// Factory builds the application state for a session, loading its cart.
type Factory func(ctx context.Context, sessionID string) (*state.App, error)

type entry struct {
	app      *state.App
	lastSeen time.Time
}

// Registry keeps one App per live session id. Sessions idle for longer than
// the idle timeout are dropped by Sweep.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	newApp      Factory
	idleTimeout time.Duration
	now         func() time.Time
	logger      zerolog.Logger
}

type Option func(*Registry)

func WithIdleTimeout(d time.Duration) Option {
	return func(r *Registry) { r.idleTimeout = d }
}

func NewRegistry(newApp Factory, logger zerolog.Logger, opts ...Option) *Registry {
	r := &Registry{
		sessions:    make(map[string]*entry),
		newApp:      newApp,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) lookup(sessionID string) (*state.App, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.app, true
}

// Get returns the session's App, building it and loading its cart on first
// use. The cart is loaded outside the registry lock. A failed load is not
// cached, so the next request retries it.
func (r *Registry) Get(ctx context.Context, sessionID string) (*state.App, error) {
	if app, ok := r.lookup(sessionID); ok {
		return app, nil
	}

	app, err := r.newApp(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sessionID]; ok {
		e.lastSeen = r.now()
		return e.app, nil
	}
	r.sessions[sessionID] = &entry{app: app, lastSeen: r.now()}
	r.logger.Debug().Str("session", sessionID).Msg("Session started")
	return app, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the idle timeout and reports how
// many it dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTimeout)
	dropped := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug().Int("dropped", n).Int("live", r.Len()).Msg("Idle sessions swept")
			}
		}
	}
}

// Middleware resolves the session cookie, issuing a new id when it is missing
// or malformed, and puts the session's App in the request context.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := ""
		if c, err := req.Cookie(CookieName); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		app, err := r.Get(req.Context(), id)
		if err != nil {
			logger.WithContext(req.Context()).Error().Err(err).Str("session", id).Msg("Failed to load session")
			api.Error(w, req, http.StatusServiceUnavailable, "Cart unavailable")
			return
		}
		next.ServeHTTP(w, req.WithContext(WithApp(req.Context(), app)))
	})
}

type appKey struct{}

func WithApp(ctx context.Context, app *state.App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func FromContext(ctx context.Context) (*state.App, bool) {
	app, ok := ctx.Value(appKey{}).(*state.App)
	return app, ok
}

// Require returns the request's App or answers 500 when the session
// middleware did not run.
func Require(w http.ResponseWriter, r *http.Request) (*state.App, bool) {
	app, ok := FromContext(r.Context())
	if !ok {
		api.Error(w, r, http.StatusInternalServerError, "Session unavailable")
	}
	return app, ok
}
