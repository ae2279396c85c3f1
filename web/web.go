// Package web содержит шаблон страницы поиска и статические файлы
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html static
var files embed.FS

// Templates разбирает встроенные HTML шаблоны
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}

// Static отдает встроенный каталог static
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
