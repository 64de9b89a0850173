package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/Priteshsurale/blogging-website/internal/forms"
	"github.com/Priteshsurale/blogging-website/internal/images"
	"github.com/Priteshsurale/blogging-website/internal/store"
)

type AccountHandler struct {
	Store     *store.Store
	Avatars   *images.Avatars
	Templates *template.Template
	Err       *ErrorHandler
}

func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)

	if r.Method == http.MethodGet {
		h.show(w, r, &forms.UpdateAccountForm{
			Username: user.Username,
			Email:    user.Email,
			Errors:   forms.Errors{},
		})
		return
	}

	form, err := forms.NewUpdateAccountForm(w, r)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			form = &forms.UpdateAccountForm{Username: user.Username, Email: user.Email, Errors: forms.Errors{}}
			form.Errors.Add("Picture", "File is too large.")
			h.show(w, r, form)
			return
		}
		h.Err.BadRequest(w)
		return
	}
	defer form.Close()

	ok, err := form.Validate(r.Context(), h.Store.Users, user.ID)
	if err != nil {
		h.Err.ServerError(w, err)
		return
	}
	if !ok {
		h.show(w, r, form)
		return
	}

	// Старый файл аватара остаётся на диске
	updated := *user
	if form.Picture != nil {
		name, err := h.Avatars.Save(form.PictureName, form.Picture)
		if errors.Is(err, images.ErrUnsupportedFormat) {
			form.Errors.Add("Picture", "Could not read the uploaded image.")
			h.show(w, r, form)
			return
		} else if err != nil {
			h.Err.ServerError(w, err)
			return
		}
		updated.ImageFile = name
	}
	updated.Username = form.Username
	updated.Email = form.Email

	if err := h.Store.Users.UpdateAccount(r.Context(), &updated); errors.Is(err, store.ErrConflict) {
		form.Errors.Add("Username", "That username or email is taken. Please choose a different one.")
		h.show(w, r, form)
		return
	} else if err != nil {
		h.Err.ServerError(w, err)
		return
	}

	SetFlash(w, "success", "Your account has been updated!")
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (h *AccountHandler) show(w http.ResponseWriter, r *http.Request, form *forms.UpdateAccountForm) {
	renderPage(w, r, h.Templates, h.Err, "account", map[string]interface{}{
		"Title":     "Account",
		"Form":      form,
		"ImageFile": CurrentUser(r).ImageFile,
	})
}
