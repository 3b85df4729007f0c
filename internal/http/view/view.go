// Package view serves the server-rendered HTML pages for member management.
package view

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

// NewEngine returns the template engine backed by the embedded templates.
// Pass it as fiber.Config.Views; pages render with the layouts/base layout.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
