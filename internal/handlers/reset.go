package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/Priteshsurale/blogging-website/internal/auth"
	"github.com/Priteshsurale/blogging-website/internal/forms"
	"github.com/Priteshsurale/blogging-website/internal/models"
	"github.com/Priteshsurale/blogging-website/internal/store"
)

// ResetHandler — сброс пароля по подписанному токену.
// Почта не отправляется: после запроса пользователь сразу попадает на страницу токена.
type ResetHandler struct {
	Store     *store.Store
	Tokens    *auth.Tokens
	Templates *template.Template
	Err       *ErrorHandler
	InfoLog   *log.Logger
}

func (h *ResetHandler) render(w http.ResponseWriter, r *http.Request, page string, data map[string]interface{}) {
	renderPage(w, r, h.Templates, h.Err, page, data)
}

func (h *ResetHandler) ResetRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, "reset_request", map[string]interface{}{
			"Title": "Reset Password",
			"Form":  &forms.RequestResetForm{Errors: forms.Errors{}},
		})
		return
	}

	form := forms.NewRequestResetForm(r)
	ok, err := form.Validate(r.Context(), h.Store.Users)
	if err != nil {
		h.Err.ServerError(w, err)
		return
	}
	if !ok {
		h.render(w, r, "reset_request", map[string]interface{}{"Title": "Reset Password", "Form": form})
		return
	}

	user, err := h.Store.Users.ByEmail(r.Context(), form.Email)
	if err != nil {
		h.Err.ServerError(w, err)
		return
	}
	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.Err.ServerError(w, err)
		return
	}

	link := "/reset_password/" + url.PathEscape(token)
	h.InfoLog.Printf("выдан токен сброса пароля для пользователя id=%d", user.ID)
	http.Redirect(w, r, link, http.StatusSeeOther)
}

func (h *ResetHandler) ResetToken(w http.ResponseWriter, r *http.Request) {
	user := h.verify(r)
	if user == nil {
		SetFlash(w, "warning", "That is an invalid or expired token")
		http.Redirect(w, r, "/reset_password", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, "reset_token", map[string]interface{}{
			"Title": "Reset Password",
			"Form":  &forms.ResetPasswordForm{Errors: forms.Errors{}},
		})
		return
	}

	form := forms.NewResetPasswordForm(r)
	if !form.Validate() {
		h.render(w, r, "reset_token", map[string]interface{}{"Title": "Reset Password", "Form": form})
		return
	}

	hashed, err := auth.HashPassword(form.Password)
	if err != nil {
		h.Err.ServerError(w, err)
		return
	}
	if err := h.Store.Users.SetPassword(r.Context(), user.ID, hashed); err != nil {
		h.Err.ServerError(w, err)
		return
	}

	SetFlash(w, "info", "Your password has been updated! You are now able to log in")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// verify возвращает владельца токена или nil, если токен подделан, просрочен
// или пользователь больше не существует
func (h *ResetHandler) verify(r *http.Request) *models.User {
	id, err := h.Tokens.Verify(r.PathValue("token"))
	if err != nil {
		return nil
	}
	user, err := h.Store.Users.ByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.Err.logf("ошибка загрузки пользователя по токену: %v", err)
		}
		return nil
	}
	return user
}
