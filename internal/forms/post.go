package forms

import (
	"net/http"
	"unicode/utf8"
)

const maxTitleLength = 100

type PostForm struct {
	Title   string
	Content string
	Errors  Errors
}

func NewPostForm(r *http.Request) *PostForm {
	return &PostForm{
		Title:   trimmed(r, "title"),
		Content: trimmed(r, "content"),
		Errors:  Errors{},
	}
}

func (f *PostForm) Validate() bool {
	if required(f.Errors, "Title", f.Title) && utf8.RuneCountInString(f.Title) > maxTitleLength {
		f.Errors.Add("Title", "Title must be at most 100 characters long.")
	}
	required(f.Errors, "Content", f.Content)
	return f.Errors.Valid()
}
