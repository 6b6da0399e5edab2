package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/samirrijal/waymark/internal/core/domain"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
// Subjects: waymark.notes.exchanged for chat traffic, waymark.trips.summary
// for completed route recordings.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// noteEvent is the published form of a chat exchange.
type noteEvent struct {
	Note    domain.RouteNote `json:"note"`
	Matches int              `json:"matches"`
	Time    time.Time        `json:"time"`
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	// Ensure streams exist
	streams := []nats.StreamConfig{
		{
			Name:      "WAYMARK_NOTES",
			Subjects:  []string{"waymark.notes.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    1 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "WAYMARK_TRIPS",
			Subjects:  []string{"waymark.trips.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist — try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishNoteExchange(ctx context.Context, note domain.RouteNote, matches int) error {
	data, err := json.Marshal(noteEvent{Note: note, Matches: matches, Time: time.Now()})
	if err != nil {
		return err
	}
	_, err = p.js.Publish("waymark.notes.exchanged", data)
	return err
}

func (p *Publisher) PublishRouteSummary(ctx context.Context, summary domain.RouteSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	_, err = p.js.Publish("waymark.trips.summary", data)
	return err
}

func (p *Publisher) PublishBroadcast(ctx context.Context, data []byte) error {
	return p.conn.Publish("waymark.updates.broadcast", data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. the
// websocket observer relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
