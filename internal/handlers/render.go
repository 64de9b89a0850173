package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/Priteshsurale/blogging-website/internal/models"
)

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"avatar": func(file string) string {
		if file == "" {
			file = models.DefaultImageFile
		}
		return "/static/profile_pics/" + file
	},
}

// ParseTemplates разбирает все templates/*.html из fsys в один набор с шаблоном "layout"
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга шаблонов: %w", err)
	}
	return tmpl, nil
}

// renderPage дополняет данные текущим пользователем и flash-сообщением
// и отрисовывает layout в буфер, чтобы ошибка шаблона не оставила полстраницы
func renderPage(w http.ResponseWriter, r *http.Request, tmpl *template.Template, errh *ErrorHandler, page string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["Page"] = page
	if _, ok := data["User"]; !ok {
		data["User"] = CurrentUser(r)
	}

	var flashes []Flash
	if f := GetFlash(w, r); f != nil {
		flashes = append(flashes, *f)
	}
	if extra, ok := data["Flashes"].([]Flash); ok {
		flashes = append(flashes, extra...)
	}
	data["Flashes"] = flashes

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "layout", data); err != nil {
		errh.ServerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
