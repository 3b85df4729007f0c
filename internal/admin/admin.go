// Package admin serves a minimal management UI where resources are registered
// with column configurations. It builds its own Fiber app, meant to be mounted
// at /admin, protected by basic auth.
package admin

import (
	"bufio"
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/template/html/v2"

	"clubapi/internal/config"
	"clubapi/internal/http/middleware"
)

const (
	// listPageSize is the number of rows per admin list page.
	listPageSize = 25
	// exportBatchSize is how many rows the CSV export fetches per round trip.
	exportBatchSize = 100
)

//go:embed templates
var templatesFS embed.FS

// Resource is a model registered with the admin site.
type Resource interface {
	// Name is the human-readable resource name shown on the index.
	Name() string
	// Slug is the URL path segment; must be unique per site.
	Slug() string
	// Columns are the list table headers, in display order.
	Columns() []string
	// ListRows returns display-ready rows (one cell per column) and the total count.
	ListRows(ctx context.Context, limit, offset int) (rows [][]string, total int, err error)
}

// Site holds the registered resources.
type Site struct {
	resources map[string]Resource
	order     []string
}

// NewSite returns an empty admin site.
func NewSite() *Site {
	return &Site{resources: make(map[string]Resource)}
}

// Register adds a resource to the site. Registering a slug twice is an error.
func (s *Site) Register(r Resource) error {
	slug := r.Slug()
	if slug == "" {
		return fmt.Errorf("admin: resource %q has an empty slug", r.Name())
	}
	if _, exists := s.resources[slug]; exists {
		return fmt.Errorf("admin: resource slug %q already registered", slug)
	}
	s.resources[slug] = r
	s.order = append(s.order, slug)
	return nil
}

// Resources returns the registered resources in registration order.
func (s *Site) Resources() []Resource {
	out := make([]Resource, 0, len(s.order))
	for _, slug := range s.order {
		out = append(out, s.resources[slug])
	}
	return out
}

func (s *Site) resource(slug string) (Resource, bool) {
	r, ok := s.resources[slug]
	return r, ok
}

func newEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// App builds the admin Fiber app. When credentials are configured every route
// requires basic auth.
func (s *Site) App(cfg config.AdminConfig) *fiber.App {
	app := fiber.New(fiber.Config{Views: newEngine()})

	if cfg.Username != "" && cfg.Password != "" {
		app.Use(basicauth.New(basicauth.Config{
			Users: map[string]string{cfg.Username: cfg.Password},
			Realm: "clubapi admin",
		}))
	}
	app.Use(middleware.NoCache())

	app.Get("/", s.indexPage())
	app.Get("/:slug", s.listPage())
	app.Get("/:slug/export.csv", s.exportCSV())

	return app
}

func (s *Site) indexPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{
			"Title":     "Administration",
			"Resources": s.Resources(),
		}, "layouts/base")
	}
}

func (s *Site) listPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, ok := s.resource(c.Params("slug"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown resource")
		}

		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		rows, total, err := res.ListRows(c.UserContext(), listPageSize, (page-1)*listPageSize)
		if err != nil {
			return fiber.ErrInternalServerError
		}

		totalPages := (total + listPageSize - 1) / listPageSize
		if totalPages < 1 {
			totalPages = 1
		}

		return c.Render("list", fiber.Map{
			"Title":      res.Name(),
			"Name":       res.Name(),
			"Slug":       res.Slug(),
			"Columns":    res.Columns(),
			"Rows":       rows,
			"Total":      total,
			"Page":       page,
			"TotalPages": totalPages,
			"HasPrev":    page > 1,
			"HasNext":    page < totalPages,
			"PrevPage":   page - 1,
			"NextPage":   page + 1,
		}, "layouts/base")
	}
}

func (s *Site) exportCSV() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, ok := s.resource(c.Params("slug"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown resource")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Slug()+`.csv"`)

		// Stream in batches; the writer runs while the response body is sent,
		// so it must not touch the request context.
		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			ctx := context.Background()
			cw := csv.NewWriter(w)

			if err := cw.Write(res.Columns()); err != nil {
				return
			}

			offset := 0
			for {
				rows, _, err := res.ListRows(ctx, exportBatchSize, offset)
				if err != nil {
					return
				}
				for _, row := range rows {
					if err := cw.Write(row); err != nil {
						return
					}
				}
				if len(rows) < exportBatchSize {
					break
				}
				offset += exportBatchSize
			}

			cw.Flush()
		})

		return nil
	}
}
