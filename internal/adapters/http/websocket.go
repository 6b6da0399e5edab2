package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// wsNoteStream adapts websocket reads to ports.NoteStream. A normal close
// from the peer ends the stream; anything else is a broken call.
type wsNoteStream struct {
	conn *websocket.Conn
}

func (s *wsNoteStream) Recv(ctx context.Context) (domain.RouteNote, error) {
	if err := ctx.Err(); err != nil {
		return domain.RouteNote{}, err
	}
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err,
			websocket.CloseNormalClosure,
			websocket.CloseGoingAway,
			websocket.CloseNoStatusReceived) {
			return domain.RouteNote{}, io.EOF
		}
		return domain.RouteNote{}, err
	}
	var note domain.RouteNote
	if err := json.Unmarshal(data, &note); err != nil {
		return domain.RouteNote{}, fmt.Errorf("parse note: %w", err)
	}
	return note, nil
}

// wsNoteSender adapts websocket writes to ports.NoteSender. Writes share a
// mutex because matches for one note and keep-alive pings come from
// different goroutines.
type wsNoteSender struct {
	conn *websocket.Conn
	mu   *sync.Mutex
}

func (s *wsNoteSender) Send(ctx context.Context, n domain.RouteNote) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// ChatHandler runs the bidirectional chat call over a websocket. Each
// JSON-encoded note the client sends is answered with every previously
// stored note at the same location; closing the socket completes the call.
func ChatHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("chat client connected", "remote", remoteAddr)

		var writeMu sync.Mutex

		// Keep-alive ping
		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					writeMu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					writeMu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		in := &wsNoteStream{conn: c}
		out := &wsNoteSender{conn: c, mu: &writeMu}
		if err := deps.Guide.RouteChat(context.Background(), in, out); err != nil {
			slog.Warn("chat call ended with error", "remote", remoteAddr, "error", err)
		}

		slog.Info("chat client disconnected", "remote", remoteAddr)
	}
}

// NotesFeedHandler relays published note-exchange events to observers.
// Read-only: client messages are ignored apart from connection control.
func NotesFeedHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		if nc == nil {
			_ = c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseServiceRestart, "event feed not configured"))
			return
		}

		remoteAddr := c.RemoteAddr().String()
		slog.Info("notes feed client connected", "remote", remoteAddr)

		var mu sync.Mutex
		sub, err := nc.Subscribe("waymark.notes.>", func(msg *nats.Msg) {
			mu.Lock()
			defer mu.Unlock()
			_ = c.WriteMessage(websocket.TextMessage, msg.Data)
		})
		if err != nil {
			slog.Warn("notes feed subscribe failed", "error", err)
			return
		}
		defer func() { _ = sub.Unsubscribe() }()

		// Block on reads so we notice the peer going away; pings keep
		// intermediaries from timing the connection out.
		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}

		slog.Info("notes feed client disconnected", "remote", remoteAddr)
	}
}
