package ports

import (
	"context"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// The stream contracts below are the call-scoped channel between a handler
// and the transport layer. A Recv blocks until the caller delivers the next
// value and returns io.EOF once the incoming stream ends normally; any other
// error means the call broke mid-stream. A Send blocks until the peer is
// ready to take the value (backpressure) and returns an error if delivery
// is no longer possible. Handlers must never hold shared locks across
// either call.

// PointStream is the incoming half of a client-streaming route recording.
type PointStream interface {
	Recv(ctx context.Context) (domain.Point, error)
}

// NoteStream is the incoming half of a bidirectional chat call.
type NoteStream interface {
	Recv(ctx context.Context) (domain.RouteNote, error)
}

// FeatureSender is the outgoing half of a server-streaming range query.
type FeatureSender interface {
	Send(ctx context.Context, f domain.Feature) error
}

// NoteSender is the outgoing half of a bidirectional chat call.
type NoteSender interface {
	Send(ctx context.Context, n domain.RouteNote) error
}
