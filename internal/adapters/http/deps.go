package http

import (
	"github.com/nats-io/nats.go"
	"github.com/samirrijal/waymark/internal/adapters/postgres"
	"github.com/samirrijal/waymark/internal/adapters/valkey"
	"github.com/samirrijal/waymark/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Guide *usecases.GuideService
	NATS  *nats.Conn
	DB    *postgres.DB
	Cache *valkey.Cache
}
