package handlers

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Priteshsurale/blogging-website/internal/auth"
	"github.com/Priteshsurale/blogging-website/internal/images"
	"github.com/Priteshsurale/blogging-website/internal/store"
)

// Deps — всё, что нужно обработчикам; передаётся явно, без глобальных переменных
type Deps struct {
	Store         *store.Store
	Templates     *template.Template
	Tokens        *auth.Tokens
	Avatars       *images.Avatars
	Static        fs.FS
	InfoLog       *log.Logger
	ErrorLog      *log.Logger
	SecureCookies bool
}

func NewRouter(d Deps) http.Handler {
	if d.InfoLog == nil {
		d.InfoLog = log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	}
	if d.ErrorLog == nil {
		d.ErrorLog = log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)
	}

	errh := &ErrorHandler{Templates: d.Templates, ErrorLog: d.ErrorLog}
	sessions := &Sessions{Store: d.Store, Secure: d.SecureCookies, ErrorLog: d.ErrorLog}

	authHandler := &AuthHandler{Store: d.Store, Sessions: sessions, Templates: d.Templates, Err: errh, InfoLog: d.InfoLog}
	accountHandler := &AccountHandler{Store: d.Store, Avatars: d.Avatars, Templates: d.Templates, Err: errh}
	postHandler := &PostHandler{Store: d.Store, Templates: d.Templates, Err: errh}
	userHandler := &UserHandler{Store: d.Store, Templates: d.Templates, Err: errh}
	resetHandler := &ResetHandler{Store: d.Store, Tokens: d.Tokens, Templates: d.Templates, Err: errh, InfoLog: d.InfoLog}

	mux := http.NewServeMux()

	// Статические файлы и загруженные аватары
	if d.Avatars != nil {
		mux.Handle("GET /static/profile_pics/", http.StripPrefix("/static/profile_pics/", http.FileServer(http.Dir(d.Avatars.Dir))))
	}
	if d.Static != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	mux.HandleFunc("GET /{$}", postHandler.Home)
	mux.HandleFunc("GET /home", postHandler.Home)
	mux.HandleFunc("GET /about", postHandler.About)

	mux.HandleFunc("GET /register", RequireGuest(authHandler.Register))
	mux.HandleFunc("POST /register", RequireGuest(authHandler.Register))
	mux.HandleFunc("GET /login", RequireGuest(authHandler.Login))
	mux.HandleFunc("POST /login", RequireGuest(authHandler.Login))
	mux.HandleFunc("GET /logout", authHandler.Logout)
	mux.HandleFunc("POST /logout", authHandler.Logout)

	mux.HandleFunc("GET /account", RequireAuth(accountHandler.Account))
	mux.HandleFunc("POST /account", RequireAuth(accountHandler.Account))

	mux.HandleFunc("GET /post/new", RequireAuth(postHandler.NewPost))
	mux.HandleFunc("POST /post/new", RequireAuth(postHandler.NewPost))
	mux.HandleFunc("GET /post/{id}", postHandler.GetPost)
	mux.HandleFunc("GET /post/{id}/update", RequireAuth(postHandler.UpdatePost))
	mux.HandleFunc("POST /post/{id}/update", RequireAuth(postHandler.UpdatePost))
	mux.HandleFunc("POST /post/{id}/delete", RequireAuth(postHandler.DeletePost))

	mux.HandleFunc("GET /user/{username}", userHandler.UserPosts)

	mux.HandleFunc("GET /reset_password", RequireGuest(resetHandler.ResetRequest))
	mux.HandleFunc("POST /reset_password", RequireGuest(resetHandler.ResetRequest))
	mux.HandleFunc("GET /reset_password/{token}", RequireGuest(resetHandler.ResetToken))
	mux.HandleFunc("POST /reset_password/{token}", RequireGuest(resetHandler.ResetToken))

	mux.HandleFunc("/", errh.NotFound)

	return errh.RecoveryMiddleware(logRequest(d.InfoLog, sessions.LoadUser(mux)))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequest(infoLog *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		infoLog.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
