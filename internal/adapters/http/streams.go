package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// pointScanner adapts a streamed NDJSON request body to ports.PointStream.
// Each non-blank line is one point; end of body is end of stream. The body
// is read incrementally, so the accumulating handler sees each point as the
// caller uploads it.
type pointScanner struct {
	scanner *bufio.Scanner
}

func newPointScanner(body io.Reader) *pointScanner {
	return &pointScanner{scanner: bufio.NewScanner(body)}
}

func (s *pointScanner) Recv(ctx context.Context) (domain.Point, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.Point{}, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return domain.Point{}, fmt.Errorf("read body: %w", err)
			}
			return domain.Point{}, io.EOF
		}
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var p domain.Point
		if err := json.Unmarshal(line, &p); err != nil {
			return domain.Point{}, fmt.Errorf("parse point: %w", err)
		}
		return p, nil
	}
}

// ndjsonFeatureSender adapts a buffered response writer to
// ports.FeatureSender. Every feature is flushed on its own line, so the
// client sees results as they are produced and a gone peer surfaces as a
// flush error that aborts the stream.
type ndjsonFeatureSender struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func newNDJSONFeatureSender(w *bufio.Writer) *ndjsonFeatureSender {
	return &ndjsonFeatureSender{w: w, enc: json.NewEncoder(w)}
}

func (s *ndjsonFeatureSender) Send(ctx context.Context, f domain.Feature) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.enc.Encode(f); err != nil {
		return fmt.Errorf("encode feature: %w", err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush feature: %w", err)
	}
	return nil
}
