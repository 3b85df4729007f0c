package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clubapi/docs"
	"clubapi/internal/admin"
	"clubapi/internal/config"
	"clubapi/internal/database"
	"clubapi/internal/database/migration"
	handlers "clubapi/internal/http/handler"
	"clubapi/internal/http/middleware"
	"clubapi/internal/http/view"
	"clubapi/internal/otel"
	"clubapi/internal/repository/postgres"
	"clubapi/internal/service"
	"clubapi/internal/storage"
)

// @title Club Membership API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Tracing comes up first so the DB driver and outbound HTTP transports
	// attach to a live provider.
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("init tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("connect object storage: %v", err)
	}

	memberRepo := postgres.NewMemberPostgres(db)
	memberSvc := service.NewMemberService(objStore, memberRepo)

	app := fiber.New(fiber.Config{
		Views:        view.NewEngine(),
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// JSON API and the server-rendered member pages share the service.
	handlers.RegisterRoutes(app, db, memberSvc)
	view.RegisterRoutes(app, memberSvc)

	// The admin site only mounts with auth configured; there is no open mode
	// outside local development.
	if cfg.Admin.Enabled && cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		site := admin.NewSite()
		if err := site.Register(admin.NewMemberResource(memberSvc)); err != nil {
			log.Fatalf("register admin resources: %v", err)
		}
		app.Mount("/admin", site.App(cfg.Admin))
	}

	// Swagger needs the externally visible host and scheme, which are only
	// known per request when running behind a proxy.
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	if err := app.Listen(cfg.Addr()); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
