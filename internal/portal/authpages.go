package portal

import (
	"net/http"

	"github.com/lakbayan/tourism-portal/internal/auth"
	"github.com/lakbayan/tourism-portal/internal/backend"
)

// loginView is the data behind the login page.
type loginView struct {
	Email   string
	Message string
}

// handleLoginForm renders the sign-in page. Signed-in users go straight to
// the dashboard.
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r.Context()); ok {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "login", "Sign in", loginView{})
}

// handleLogin authenticates the submitted credentials. Failures re-render
// the page with the status-specific message and keep the email so only the
// password needs retyping.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	session, err := s.auth.Login(r.Context(), email, password)
	if err != nil {
		s.log.Warn("login failed", "email", email, "error", err)
		s.render(w, r, http.StatusUnauthorized, "login", "Sign in", loginView{
			Email:   email,
			Message: backend.AuthMessage(err),
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleLogout closes the session and clears the cookie. Always lands on
// the login page, even when the upstream logout call fails.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			s.log.Warn("upstream logout failed", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// settingsView is the data behind the account settings page.
type settingsView struct {
	Message string
	Failed  bool
}

// handleSettings renders the account page with the password form.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "settings", "Account settings", settingsView{})
}

// handleChangePassword rotates the signed-in user's password.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	current := r.PostFormValue("current_password")
	next := r.PostFormValue("new_password")
	confirm := r.PostFormValue("confirm_password")

	if next == "" || next != confirm {
		s.render(w, r, http.StatusUnprocessableEntity, "settings", "Account settings", settingsView{
			Message: "New passwords do not match.",
			Failed:  true,
		})
		return
	}

	cookie, err := r.Cookie(auth.SessionCookie)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := s.auth.ChangePassword(r.Context(), cookie.Value, current, next); err != nil {
		s.log.Warn("password change failed", "error", err)
		s.render(w, r, http.StatusUnprocessableEntity, "settings", "Account settings", settingsView{
			Message: backend.AuthMessage(err),
			Failed:  true,
		})
		return
	}

	s.render(w, r, http.StatusOK, "settings", "Account settings", settingsView{
		Message: "Password updated.",
	})
}
