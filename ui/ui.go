package ui

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static
var Files embed.FS

// Static — содержимое каталога static для раздачи по /static/
func Static() fs.FS {
	sub, err := fs.Sub(Files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
