package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on
// endpoint. The feature dataset is immutable for the process lifetime, so
// feature lookups cache aggressively; everything live stays uncached.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string
		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10"

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/graphql":
			ttl = "private, max-age=0"

		case strings.HasPrefix(path, "/v1/features/stream"):
			ttl = "no-store" // in-flight stream, never cacheable

		case strings.HasPrefix(path, "/v1/features"):
			ttl = "public, max-age=3600" // immutable dataset
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
