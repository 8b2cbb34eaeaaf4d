package api

import (
	"context"
	"crypto/subtle"
	"embed"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"fxdesk/internal/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// SessionStore is the session backend used by the pages.
type SessionStore interface {
	Create(ctx context.Context, username string) (string, error)
	Lookup(ctx context.Context, id string) (string, error)
	Destroy(ctx context.Context, id string) error
}

// Pages serves the login form and the dashboard.
type Pages struct {
	sessions SessionStore
	auth     config.AuthConfig
	log      *zap.SugaredLogger
}

// NewPages creates the page handlers.
func NewPages(sessions SessionStore, auth config.AuthConfig, logger *zap.SugaredLogger) *Pages {
	return &Pages{sessions: sessions, auth: auth, log: logger}
}

type loginView struct {
	Error string
}

type indexView struct {
	Username string
}

// LoginForm renders the sign-in page, or forwards signed-in users to the dashboard.
func (p *Pages) LoginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := p.currentUser(r); ok {
			http.Redirect(w, r, "/index", http.StatusSeeOther)
			return
		}
		p.render(w, http.StatusOK, "login.html", loginView{})
	}
}

// Login checks the submitted credentials and starts a session.
func (p *Pages) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			p.render(w, http.StatusBadRequest, "login.html", loginView{Error: "Invalid form submission."})
			return
		}
		username := r.PostForm.Get("username")
		password := r.PostForm.Get("password")
		if !p.validCredentials(username, password) {
			p.log.Infow("Login rejected", "username", username)
			p.render(w, http.StatusUnauthorized, "login.html", loginView{Error: "Invalid username or password."})
			return
		}

		id, err := p.sessions.Create(r.Context(), username)
		if err != nil {
			p.log.Errorw("Session create failed", "error", err)
			p.render(w, http.StatusServiceUnavailable, "login.html", loginView{Error: "Sign-in is temporarily unavailable."})
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     p.auth.CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   p.auth.SessionTTLSec,
			Expires:  time.Now().Add(time.Duration(p.auth.SessionTTLSec) * time.Second),
			HttpOnly: true,
			Secure:   p.auth.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/index", http.StatusSeeOther)
	}
}

// Index renders the dashboard for signed-in users.
func (p *Pages) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := p.currentUser(r)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		p.render(w, http.StatusOK, "index.html", indexView{Username: username})
	}
}

// Logout ends the session and clears the cookie.
func (p *Pages) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(p.auth.CookieName); err == nil {
			if err := p.sessions.Destroy(r.Context(), c.Value); err != nil {
				p.log.Warnw("Session destroy failed", "error", err)
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     p.auth.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   p.auth.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (p *Pages) currentUser(r *http.Request) (string, bool) {
	c, err := r.Cookie(p.auth.CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	username, err := p.sessions.Lookup(r.Context(), c.Value)
	if err != nil {
		p.log.Debugw("Session lookup failed", "error", err)
		return "", false
	}
	return username, true
}

func (p *Pages) validCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(p.auth.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(p.auth.Password)) == 1
	return userOK && passOK
}

func (p *Pages) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		p.log.Errorw("Template render failed", "template", name, "error", err)
	}
}
