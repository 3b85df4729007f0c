package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"clubapi/internal/service"
)

// docsPage embeds Swagger UI from a CDN and points it at the served spec.
const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Club API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`

// RegisterRoutes attaches the JSON API to the app. Handlers stay free of
// business logic; everything goes through the member service.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.MemberService) {
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Type("html").SendString(docsPage)
	})

	// health pings the database; healthz only reports the process is up
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/members", ListMembers(svc))
	app.Post("/members", CreateMember(svc))
	app.Get("/members/:id", GetMember(svc))
	app.Put("/members/:id", UpdateMember(svc))
	app.Delete("/members/:id", DeleteMember(svc))
	app.Post("/members/:id/photo", UploadMemberPhoto(svc))
	app.Get("/members/:id/photo", GetMemberPhoto(svc))
}
