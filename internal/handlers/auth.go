package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/Priteshsurale/blogging-website/internal/auth"
	"github.com/Priteshsurale/blogging-website/internal/forms"
	"github.com/Priteshsurale/blogging-website/internal/store"
)

const loginFailed = "Login Unsuccessful. Please check email and password"

type AuthHandler struct {
	Store     *store.Store
	Sessions  *Sessions
	Templates *template.Template
	Err       *ErrorHandler
	InfoLog   *log.Logger
}

func (h *AuthHandler) render(w http.ResponseWriter, r *http.Request, page string, data map[string]interface{}) {
	renderPage(w, r, h.Templates, h.Err, page, data)
}

// Регистрация пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, "register", map[string]interface{}{
			"Title": "Register",
			"Form":  &forms.RegistrationForm{Errors: forms.Errors{}},
		})
		return
	}

	form := forms.NewRegistrationForm(r)
	ok, err := form.Validate(r.Context(), h.Store.Users)
	if err != nil {
		h.Err.ServerError(w, err)
		return
	}
	if !ok {
		h.render(w, r, "register", map[string]interface{}{"Title": "Register", "Form": form})
		return
	}

	hashed, err := auth.HashPassword(form.Password)
	if err != nil {
		h.Err.ServerError(w, err)
		return
	}

	user, err := h.Store.Users.Create(r.Context(), form.Username, form.Email, hashed)
	if errors.Is(err, store.ErrConflict) {
		form.Errors.Add("Username", "That username or email is taken. Please choose a different one.")
		h.render(w, r, "register", map[string]interface{}{"Title": "Register", "Form": form})
		return
	} else if err != nil {
		h.Err.ServerError(w, err)
		return
	}

	h.InfoLog.Printf("зарегистрирован пользователь %s (id=%d)", user.Username, user.ID)
	SetFlash(w, "success", fmt.Sprintf("Account created for %s! You are now able to log in", user.Username))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Вход пользователя. Неверный email и неверный пароль дают одно и то же сообщение.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, "login", map[string]interface{}{
			"Title": "Login",
			"Form":  &forms.LoginForm{Errors: forms.Errors{}},
			"Next":  safeNext(r.URL.Query().Get("next")),
		})
		return
	}

	form := forms.NewLoginForm(r)
	next := safeNext(r.URL.Query().Get("next"))
	if !form.Validate() {
		h.render(w, r, "login", map[string]interface{}{"Title": "Login", "Form": form, "Next": next})
		return
	}

	user, err := h.Store.Users.ByEmail(r.Context(), form.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.Err.ServerError(w, err)
		return
	}
	if user == nil || !auth.CheckPassword(user.Password, form.Password) {
		h.render(w, r, "login", map[string]interface{}{
			"Title":   "Login",
			"Form":    form,
			"Next":    next,
			"Flashes": []Flash{{Category: "danger", Message: loginFailed}},
		})
		return
	}

	if err := h.Sessions.Start(w, r, user.ID, form.Remember); err != nil {
		h.Err.ServerError(w, err)
		return
	}

	if next == "" {
		next = "/home"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Выход пользователя
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.End(w, r)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}
