package middleware

import "github.com/gofiber/fiber/v2"

// NoCache marks responses as uncacheable. The HTML pages and the admin site
// render live member data, so shared caches and the browser back button must
// not serve stale copies.
func NoCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
		return c.Next()
	}
}
