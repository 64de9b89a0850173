package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/Priteshsurale/blogging-website/internal/models"
	"github.com/Priteshsurale/blogging-website/internal/store"
)

const (
	SessionCookieName = "session_id"
	sessionTTL        = 24 * time.Hour
	rememberTTL       = 30 * 24 * time.Hour
)

type contextKey string

const userKey contextKey = "user"

// Sessions связывает cookie session_id с пользователем из базы
type Sessions struct {
	Store    *store.Store
	Secure   bool
	ErrorLog *log.Logger
}

// Start создаёт сессию и выставляет cookie
func (s *Sessions) Start(w http.ResponseWriter, r *http.Request, userID uint, remember bool) error {
	ttl := sessionTTL
	if remember {
		ttl = rememberTTL
	}
	session, err := s.Store.Sessions.Create(r.Context(), userID, ttl)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// End удаляет сессию из базы и стирает cookie
func (s *Sessions) End(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := s.Store.Sessions.Delete(r.Context(), cookie.Value); err != nil {
			s.ErrorLog.Printf("ошибка удаления сессии: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// LoadUser кладёт в контекст запроса пользователя из действующей сессии
func (s *Sessions) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.Store.Sessions.User(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrSessionExpired) {
				s.ErrorLog.Printf("ошибка проверки сессии: %v", err)
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// CurrentUser возвращает вошедшего пользователя или nil
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// RequireAuth пускает только вошедших; остальных отправляет на /login?next=...
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noCache(w)
		if CurrentUser(r) == nil {
			SetFlash(w, "info", "Please log in to access this page.")
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireGuest отправляет вошедших пользователей на главную
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noCache(w)
		if CurrentUser(r) != nil {
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// safeNext допускает только локальные пути, чтобы ?next= не уводил на чужой сайт
func safeNext(next string) string {
	if next == "" {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || len(u.Path) == 0 || u.Path[0] != '/' {
		return ""
	}
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return ""
	}
	return next
}
