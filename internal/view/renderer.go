// Package view renders the server-side HTML pages through Echo's Renderer
// interface. Templates are embedded so the binary ships self-contained.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer adapts html/template to echo.Renderer. Each file under
// templates/ is addressed by its base name (e.g. "login.html").
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates and returns a ready Renderer.
func New() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
