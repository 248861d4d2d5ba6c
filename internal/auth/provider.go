// Package auth owns the signed-in state of the dashboard. One Provider is
// constructed at the application root; pages read the current user through
// the request context, and the only writes are the Provider's own Login,
// Logout, Refresh and ChangePassword methods. Nothing else can mutate the
// shared value.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lakbayan/tourism-portal/internal/backend"
	"github.com/lakbayan/tourism-portal/internal/domain"
)

// SessionCookie is the name of the portal's own session cookie. It holds
// an opaque session id, never the upstream bearer token.
const SessionCookie = "portal_session"

// sessionTTL bounds how long an idle dashboard session stays valid.
const sessionTTL = 12 * time.Hour

// Session pairs the upstream bearer token with the signed-in user record.
type Session struct {
	ID        string
	Token     string
	User      domain.User
	ExpiresAt time.Time
}

// Provider authenticates against the upstream and keeps the sessions of
// signed-in staff. Safe for concurrent use.
type Provider struct {
	api *backend.Client

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewProvider builds the Provider over the upstream client.
func NewProvider(api *backend.Client) *Provider {
	return &Provider{api: api, sessions: make(map[string]*Session)}
}

// Login authenticates the credentials upstream and opens a portal session.
// On success the current-user record is refetched with the fresh token, so
// the session always starts from the authoritative copy.
func (p *Provider) Login(ctx context.Context, email, password string) (*Session, error) {
	result, err := p.api.Login(ctx, backend.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("auth.Provider.Login: %w", err)
	}

	user, err := p.api.WithToken(result.Token).CurrentUser(ctx)
	if err != nil {
		// Fall back to the record the login response carried.
		user = result.User
	}

	session := &Session{
		ID:        uuid.NewString(),
		Token:     result.Token,
		User:      user,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	p.mu.Lock()
	p.sessions[session.ID] = session
	p.mu.Unlock()
	return session, nil
}

// Logout closes the portal session and invalidates the upstream one.
func (p *Provider) Logout(ctx context.Context, sessionID string) error {
	p.mu.Lock()
	session, ok := p.sessions[sessionID]
	delete(p.sessions, sessionID)
	p.mu.Unlock()
	if !ok {
		return nil
	}
	if err := p.api.WithToken(session.Token).Logout(ctx); err != nil {
		return fmt.Errorf("auth.Provider.Logout: %w", err)
	}
	return nil
}

// Refresh refetches the current-user record for the session and stores it.
func (p *Provider) Refresh(ctx context.Context, sessionID string) (domain.User, error) {
	session, ok := p.lookup(sessionID)
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	user, err := p.api.WithToken(session.Token).CurrentUser(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth.Provider.Refresh: %w", err)
	}

	p.mu.Lock()
	if s, still := p.sessions[sessionID]; still {
		s.User = user
	}
	p.mu.Unlock()
	return user, nil
}

// ChangePassword rotates the session user's password upstream.
func (p *Provider) ChangePassword(ctx context.Context, sessionID, current, next string) error {
	session, ok := p.lookup(sessionID)
	if !ok {
		return domain.ErrNotFound
	}
	if err := p.api.WithToken(session.Token).ChangePassword(ctx, current, next); err != nil {
		return fmt.Errorf("auth.Provider.ChangePassword: %w", err)
	}
	return nil
}

// Client returns an upstream client authenticated as the session user, or
// the portal's own client when the session is unknown.
func (p *Provider) Client(sessionID string) *backend.Client {
	if session, ok := p.lookup(sessionID); ok {
		return p.api.WithToken(session.Token)
	}
	return p.api
}

// lookup returns the live session for id, expiring it lazily.
func (p *Provider) lookup(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	p.mu.RLock()
	session, ok := p.sessions[id]
	p.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(session.ExpiresAt) {
		p.mu.Lock()
		delete(p.sessions, id)
		p.mu.Unlock()
		return nil, false
	}
	return session, true
}

// ---- request-context plumbing ----------------------------------------------

type ctxKey struct{}

// withSession stores the session on the request context.
func withSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached to the request, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}

// CurrentUser returns the signed-in user attached to the request, if any.
func CurrentUser(ctx context.Context) (domain.User, bool) {
	if s, ok := FromContext(ctx); ok {
		return s.User, true
	}
	return domain.User{}, false
}

// ---- middleware --------------------------------------------------------------

// LoadSession resolves the session cookie and, when valid, attaches the
// session to the request context. Anonymous requests pass through.
func (p *Provider) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			if session, ok := p.lookup(cookie.Value); ok {
				r = r.WithContext(withSession(r.Context(), session))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser redirects anonymous requests to the login page. Wire it
// after LoadSession on every /admin route.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
