package handlers

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"runtime/debug"
)

type ErrorHandler struct {
	Templates *template.Template
	ErrorLog  *log.Logger
}

func (h *ErrorHandler) Render(w http.ResponseWriter, status int, msg string) {
	if h == nil || h.Templates == nil {
		http.Error(w, msg, status)
		return
	}
	buf := new(bytes.Buffer)
	err := h.Templates.ExecuteTemplate(buf, "layout", map[string]interface{}{
		"Page":   "error",
		"Title":  http.StatusText(status),
		"Error":  msg,
		"Status": status,
	})
	if err != nil {
		h.logf("ошибка отображения страницы ошибки: %v", err)
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Render(w, http.StatusNotFound, "Oops. Page Not Found (404)")
}

func (h *ErrorHandler) Forbidden(w http.ResponseWriter) {
	h.Render(w, http.StatusForbidden, "You don't have permission to do that (403)")
}

func (h *ErrorHandler) BadRequest(w http.ResponseWriter) {
	h.Render(w, http.StatusBadRequest, "Bad request (400)")
}

// ServerError пишет ошибку со стеком в лог, а пользователю отдаёт общую страницу 500
func (h *ErrorHandler) ServerError(w http.ResponseWriter, err error) {
	h.logf("%s\n%s", err.Error(), debug.Stack())
	h.Render(w, http.StatusInternalServerError, "Something went wrong (500)")
}

func (h *ErrorHandler) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				w.Header().Set("Connection", "close")
				h.logf("panic: %v\n%s", rec, debug.Stack())
				h.Render(w, http.StatusInternalServerError, "Something went wrong (500)")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *ErrorHandler) logf(format string, args ...interface{}) {
	if h != nil && h.ErrorLog != nil {
		h.ErrorLog.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
