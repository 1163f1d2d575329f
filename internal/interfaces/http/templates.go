package http

import (
	"embed"
	"html/template"

	"github.com/garyjia/leave-master/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"t": i18n.Translate,
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
