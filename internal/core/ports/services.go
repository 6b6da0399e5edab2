package ports

import (
	"context"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishNoteExchange(ctx context.Context, note domain.RouteNote, matches int) error
	PublishRouteSummary(ctx context.Context, summary domain.RouteSummary) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
