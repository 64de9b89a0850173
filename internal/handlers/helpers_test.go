package handlers_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Priteshsurale/blogging-website/internal/auth"
	"github.com/Priteshsurale/blogging-website/internal/db"
	"github.com/Priteshsurale/blogging-website/internal/handlers"
	"github.com/Priteshsurale/blogging-website/internal/images"
	"github.com/Priteshsurale/blogging-website/internal/models"
	"github.com/Priteshsurale/blogging-website/internal/store"
	"github.com/Priteshsurale/blogging-website/ui"
)

const testSecret = "test-secret"

type testApp struct {
	Store   *store.Store
	Tokens  *auth.Tokens
	Avatars *images.Avatars
	Router  http.Handler
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()

	gdb, err := db.Open(filepath.Join(dir, "blog.db"), false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close(gdb) })
	if err := db.InitDatabase(gdb); err != nil {
		t.Fatal(err)
	}

	tmpl, err := handlers.ParseTemplates(ui.Files)
	if err != nil {
		t.Fatal(err)
	}

	app := &testApp{
		Store:   store.New(gdb),
		Tokens:  auth.NewTokens(testSecret, 30*time.Minute),
		Avatars: images.NewAvatars(filepath.Join(dir, "uploads")),
	}
	quiet := log.New(io.Discard, "", 0)
	app.Router = handlers.NewRouter(handlers.Deps{
		Store:     app.Store,
		Templates: tmpl,
		Tokens:    app.Tokens,
		Avatars:   app.Avatars,
		Static:    ui.Static(),
		InfoLog:   quiet,
		ErrorLog:  quiet,
	})
	return app
}

// createUser сохраняет пользователя с паролем "123456"
func (a *testApp) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword("123456")
	if err != nil {
		t.Fatal(err)
	}
	user, err := a.Store.Users.Create(context.Background(), username, username+"@example.com", hashed)
	if err != nil {
		t.Fatal(err)
	}
	return user
}

// loginCookie открывает сессию напрямую через хранилище
func (a *testApp) loginCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	session, err := a.Store.Sessions.Create(context.Background(), user.ID, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: handlers.SessionCookieName, Value: session.ID}
}

func (a *testApp) createPost(t *testing.T, user *models.User, title string) *models.Post {
	t.Helper()
	post, err := a.Store.Posts.Create(context.Background(), user.ID, title, "Body of "+title)
	if err != nil {
		t.Fatal(err)
	}
	return post
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, cookies...)
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func flashOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	c := findCookie(w, "flash")
	if c == nil {
		return ""
	}
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func expectRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}
