package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/samirrijal/waymark/internal/core/domain"
	"github.com/samirrijal/waymark/internal/core/ports"
	"github.com/samirrijal/waymark/internal/pkg/geospatial"
	"github.com/samirrijal/waymark/internal/pkg/metrics"
)

// GuideService implements the four guide call patterns against the
// immutable feature store and the shared note board. Cache and events
// are optional; a nil value disables that concern.
type GuideService struct {
	features *FeatureStore
	board    *NoteBoard
	cache    ports.CacheService
	events   ports.EventPublisher
}

// NewGuideService creates a new GuideService.
func NewGuideService(features *FeatureStore, board *NoteBoard, cache ports.CacheService, events ports.EventPublisher) *GuideService {
	return &GuideService{features: features, board: board, cache: cache, events: events}
}

// GetFeature answers the unary lookup: the response echoes the requested
// location, with the feature name or "" when nothing is there. It never
// fails; a miss is a normal outcome.
func (s *GuideService) GetFeature(ctx context.Context, p domain.Point) (domain.Feature, error) {
	name := s.features.Lookup(p)

	result := "miss"
	if name != "" {
		result = "hit"
	}
	metrics.FeatureLookups.WithLabelValues(result).Inc()

	slog.DebugContext(ctx, "feature lookup",
		"latitude", p.Latitude, "longitude", p.Longitude, "result", result)

	return domain.Feature{Name: name, Location: p}, nil
}

// ListFeatures streams every feature inside r to send, in store order.
// A send error aborts the stream; exhaustion completes the call.
func (s *GuideService) ListFeatures(ctx context.Context, r domain.Rectangle, send ports.FeatureSender) error {
	for f := range s.features.Within(r) {
		if err := send.Send(ctx, f); err != nil {
			return fmt.Errorf("send feature: %w", err)
		}
		metrics.FeaturesStreamed.Inc()
	}
	return nil
}

// FeaturesWithin is the buffered form of the range query, used by the REST
// list endpoint and GraphQL. Results are cached briefly: the dataset is
// immutable, so entries never go stale, only cold.
func (s *GuideService) FeaturesWithin(ctx context.Context, r domain.Rectangle) ([]domain.Feature, error) {
	cacheKey := fmt.Sprintf("features:range:%d:%d:%d:%d",
		r.Lo.Latitude, r.Lo.Longitude, r.Hi.Latitude, r.Hi.Longitude)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var features []domain.Feature
			if err := json.Unmarshal(data, &features); err == nil {
				metrics.CacheHits.Inc()
				return features, nil
			}
		}
		metrics.CacheMisses.Inc()
	}

	var features []domain.Feature
	for f := range s.features.Within(r) {
		features = append(features, f)
	}

	if s.cache != nil {
		if data, err := json.Marshal(features); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return features, nil
}

// RecordRoute consumes a stream of points and produces one summary when the
// stream ends: number of points, number that matched a feature, cumulative
// great-circle distance truncated to whole meters, and elapsed whole seconds.
// All accumulator state is call-local.
func (s *GuideService) RecordRoute(ctx context.Context, points ports.PointStream) (domain.RouteSummary, error) {
	var (
		summary  domain.RouteSummary
		distance float64
		previous domain.Point
	)
	started := time.Now()

	for {
		p, err := points.Recv(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.RouteSummary{}, fmt.Errorf("recv point: %w", err)
		}

		summary.PointCount++
		if s.features.Lookup(p) != "" {
			summary.FeatureCount++
		}
		if summary.PointCount > 1 {
			distance += geospatial.FixedPointDistance(
				previous.Latitude, previous.Longitude, p.Latitude, p.Longitude)
		}
		previous = p

		slog.DebugContext(ctx, "route point received",
			"latitude", p.Latitude, "longitude", p.Longitude)
	}

	summary.Distance = int32(distance)
	summary.ElapsedTime = int32(time.Since(started) / time.Second)

	metrics.RoutesRecorded.Inc()
	metrics.RoutePointsRecorded.Add(float64(summary.PointCount))
	if s.events != nil {
		_ = s.events.PublishRouteSummary(ctx, summary)
	}

	slog.InfoContext(ctx, "route recorded",
		"points", summary.PointCount,
		"features", summary.FeatureCount,
		"distance_m", summary.Distance,
		"elapsed_s", summary.ElapsedTime)

	return summary, nil
}

// RouteChat relays notes between concurrent callers. Each incoming note is
// exchanged against the shared board in one atomic step, and the matches
// are streamed back outside the board's lock, so a slow peer never stalls
// other calls. The call completes when the incoming stream ends; nothing
// already appended is ever rolled back.
func (s *GuideService) RouteChat(ctx context.Context, in ports.NoteStream, out ports.NoteSender) error {
	metrics.ActiveChatSessions.Inc()
	defer metrics.ActiveChatSessions.Dec()

	for {
		note, err := in.Recv(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("recv note: %w", err)
		}

		matches := s.board.Exchange(note)

		for _, m := range matches {
			if err := out.Send(ctx, m); err != nil {
				return fmt.Errorf("send note: %w", err)
			}
		}

		metrics.NotesExchanged.Inc()
		metrics.NoteMatchesReturned.Add(float64(len(matches)))
		if s.events != nil {
			_ = s.events.PublishNoteExchange(ctx, note, len(matches))
		}

		slog.DebugContext(ctx, "note exchanged",
			"latitude", note.Location.Latitude,
			"longitude", note.Location.Longitude,
			"matches", len(matches))
	}
}

// NoteCount reports how many notes the shared board holds.
func (s *GuideService) NoteCount() int {
	return s.board.Len()
}

// FeatureCount reports the size of the static dataset.
func (s *GuideService) FeatureCount() int {
	return s.features.Len()
}
