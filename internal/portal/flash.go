package portal

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
)

// flashCookie carries one toast across the redirect that follows a
// mutation. Set on the redirect response, read and cleared on the next
// page render.
const flashCookie = "portal_flash"

// Flash is one user-visible toast.
type Flash struct {
	Level   string // "success" or "error"
	Message string
}

type flashKey struct{}

// flashContext stashes the response writer on the request context so the
// catalog services, which only see a context, can set the outcome toast.
func (s *Server) flashContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), flashKey{}, w)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// setFlash writes the toast cookie onto the response attached to ctx.
// Outside a request (tests driving a service directly) it is a no-op.
func setFlash(ctx context.Context, level, message string) {
	w, ok := ctx.Value(flashKey{}).(http.ResponseWriter)
	if !ok {
		return
	}
	value := base64.URLEncoding.EncodeToString([]byte(level + "\n" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the toast cookie, if one is set.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	level, message, found := strings.Cut(string(decoded), "\n")
	if !found || message == "" {
		return nil
	}
	return &Flash{Level: level, Message: message}
}

// Notifier adapts the flash cookie to the catalog's notification hook.
type Notifier struct{}

// Success records a success toast for the next page render.
func (Notifier) Success(ctx context.Context, message string) { setFlash(ctx, "success", message) }

// Failure records an error toast for the next page render.
func (Notifier) Failure(ctx context.Context, message string) { setFlash(ctx, "error", message) }
