package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/Priteshsurale/blogging-website/internal/store"
)

type UserHandler struct {
	Store     *store.Store
	Templates *template.Template
	Err       *ErrorHandler
}

// UserPosts — посты одного автора с постраничной навигацией
func (h *UserHandler) UserPosts(w http.ResponseWriter, r *http.Request) {
	author, err := h.Store.Users.ByUsername(r.Context(), r.PathValue("username"))
	if errors.Is(err, store.ErrNotFound) {
		h.Err.NotFound(w, r)
		return
	} else if err != nil {
		h.Err.ServerError(w, err)
		return
	}

	number := pageNumber(r)
	page, err := h.Store.Posts.ListByAuthor(r.Context(), author.ID, number, store.DefaultPerPage)
	if err != nil {
		h.Err.ServerError(w, err)
		return
	}
	if number > 1 && len(page.Items) == 0 {
		h.Err.NotFound(w, r)
		return
	}

	renderPage(w, r, h.Templates, h.Err, "user_posts", map[string]interface{}{
		"Title":  "Posts by " + author.Username,
		"Author": author,
		"Posts":  page,
	})
}
