package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/Priteshsurale/blogging-website/internal/forms"
	"github.com/Priteshsurale/blogging-website/internal/models"
	"github.com/Priteshsurale/blogging-website/internal/store"
)

type PostHandler struct {
	Store     *store.Store
	Templates *template.Template
	Err       *ErrorHandler
}

func (h *PostHandler) render(w http.ResponseWriter, r *http.Request, page string, data map[string]interface{}) {
	renderPage(w, r, h.Templates, h.Err, page, data)
}

// Home — лента всех постов, новые сверху, по 5 на страницу
func (h *PostHandler) Home(w http.ResponseWriter, r *http.Request) {
	number := pageNumber(r)
	page, err := h.Store.Posts.List(r.Context(), number, store.DefaultPerPage)
	if err != nil {
		h.Err.ServerError(w, err)
		return
	}
	if number > 1 && len(page.Items) == 0 {
		h.Err.NotFound(w, r)
		return
	}
	h.render(w, r, "home", map[string]interface{}{
		"Title": "Home",
		"Posts": page,
	})
}

func (h *PostHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "about", map[string]interface{}{"Title": "About"})
}

// Получение одного поста по id
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	h.render(w, r, "post", map[string]interface{}{
		"Title": post.Title,
		"Post":  post,
	})
}

func (h *PostHandler) NewPost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.showEditor(w, r, &forms.PostForm{Errors: forms.Errors{}}, "New Post")
		return
	}

	form := forms.NewPostForm(r)
	if !form.Validate() {
		h.showEditor(w, r, form, "New Post")
		return
	}

	if _, err := h.Store.Posts.Create(r.Context(), CurrentUser(r).ID, form.Title, form.Content); err != nil {
		h.Err.ServerError(w, err)
		return
	}

	SetFlash(w, "success", "Your post has been created!")
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadOwnPost(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		h.showEditor(w, r, &forms.PostForm{Title: post.Title, Content: post.Content, Errors: forms.Errors{}}, "Update Post")
		return
	}

	form := forms.NewPostForm(r)
	if !form.Validate() {
		h.showEditor(w, r, form, "Update Post")
		return
	}

	post.Title = form.Title
	post.Content = form.Content
	if err := h.Store.Posts.Update(r.Context(), post); err != nil {
		h.Err.ServerError(w, err)
		return
	}

	SetFlash(w, "success", "Your post has been updated!")
	http.Redirect(w, r, fmt.Sprintf("/post/%d", post.ID), http.StatusSeeOther)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadOwnPost(w, r)
	if !ok {
		return
	}
	if err := h.Store.Posts.Delete(r.Context(), post.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		h.Err.ServerError(w, err)
		return
	}

	SetFlash(w, "success", "Your post has been deleted!")
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (h *PostHandler) showEditor(w http.ResponseWriter, r *http.Request, form *forms.PostForm, legend string) {
	h.render(w, r, "create_post", map[string]interface{}{
		"Title":  legend,
		"Legend": legend,
		"Form":   form,
	})
}

// loadPost отвечает 404, если id некорректен или поста нет
func (h *PostHandler) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		h.Err.NotFound(w, r)
		return nil, false
	}
	post, err := h.Store.Posts.Get(r.Context(), uint(id))
	if errors.Is(err, store.ErrNotFound) {
		h.Err.NotFound(w, r)
		return nil, false
	} else if err != nil {
		h.Err.ServerError(w, err)
		return nil, false
	}
	return post, true
}

// loadOwnPost дополнительно отвечает 403, если пост чужой
func (h *PostHandler) loadOwnPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return nil, false
	}
	user := CurrentUser(r)
	if user == nil || !post.IsAuthor(user.ID) {
		h.Err.Forbidden(w)
		return nil, false
	}
	return post, true
}

func pageNumber(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
