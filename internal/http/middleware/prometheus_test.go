package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metricsApp returns an instrumented app with a private registry so tests
// never collide on collector registration.
func metricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware) {
	t.Helper()
	pm, err := NewPrometheusMiddleware(prometheus.NewRegistry())
	require.NoError(t, err)

	app := fiber.New()
	app.Use(pm.Handler())
	return app, pm
}

func TestPrometheusMiddleware(t *testing.T) {
	t.Run("counts by method and status", func(t *testing.T) {
		app, pm := metricsApp(t)
		app.Get("/roster", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
		app.Delete("/roster", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

		for _, method := range []string{"GET", "GET", "DELETE"} {
			resp, err := app.Test(httptest.NewRequest(method, "/roster", nil))
			require.NoError(t, err)
			assert.Less(t, resp.StatusCode, 300)
		}

		assert.Equal(t, float64(2),
			testutil.ToFloat64(pm.requestCount.WithLabelValues("GET", "/roster", "200")))
		assert.Equal(t, float64(1),
			testutil.ToFloat64(pm.requestCount.WithLabelValues("DELETE", "/roster", "204")))
	})

	t.Run("fiber errors keep their status code", func(t *testing.T) {
		app, pm := metricsApp(t)
		app.Get("/broken", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusBadRequest, "bad request")
		})

		_, err := app.Test(httptest.NewRequest("GET", "/broken", nil))
		require.NoError(t, err)

		assert.Equal(t, float64(1),
			testutil.ToFloat64(pm.requestCount.WithLabelValues("GET", "/broken", "400")))
	})

	t.Run("uses the route pattern not the raw path", func(t *testing.T) {
		app, pm := metricsApp(t)
		app.Get("/members/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		_, err := app.Test(httptest.NewRequest("GET", "/members/123", nil))
		require.NoError(t, err)

		assert.Equal(t, float64(1),
			testutil.ToFloat64(pm.requestCount.WithLabelValues("GET", "/members/:id", "200")))
		assert.NotZero(t, testutil.CollectAndCount(pm.requestDuration))
	})

	t.Run("skips the metrics endpoint itself", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		pm, err := NewPrometheusMiddleware(reg)
		require.NoError(t, err)

		app := fiber.New()
		app.Use(pm.Handler())
		app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		_, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
		require.NoError(t, err)

		mfs, err := reg.Gather()
		require.NoError(t, err)
		for _, mf := range mfs {
			if mf.GetName() == "http_requests_total" {
				assert.Empty(t, mf.GetMetric())
			}
		}
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := NewPrometheusMiddleware(reg)
		require.NoError(t, err)

		_, err = NewPrometheusMiddleware(reg)
		assert.Error(t, err)
	})
}
