package http

import (
	"bufio"
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// queryCoord parses a required fixed-point coordinate query parameter.
// Zero is a valid coordinate, so presence is checked explicitly.
func queryCoord(c *fiber.Ctx, name string) (int32, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a fixed-point integer")
	}
	return int32(v), nil
}

func queryPoint(c *fiber.Ctx) (domain.Point, error) {
	lat, err := queryCoord(c, "latitude")
	if err != nil {
		return domain.Point{}, err
	}
	lon, err := queryCoord(c, "longitude")
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{Latitude: lat, Longitude: lon}, nil
}

func queryRectangle(c *fiber.Ctx) (domain.Rectangle, error) {
	var r domain.Rectangle
	var err error
	if r.Lo.Latitude, err = queryCoord(c, "lo_lat"); err != nil {
		return r, err
	}
	if r.Lo.Longitude, err = queryCoord(c, "lo_lon"); err != nil {
		return r, err
	}
	if r.Hi.Latitude, err = queryCoord(c, "hi_lat"); err != nil {
		return r, err
	}
	if r.Hi.Longitude, err = queryCoord(c, "hi_lon"); err != nil {
		return r, err
	}
	return r, nil
}

// FeatureAtHandler answers the unary lookup: the feature at an exact
// coordinate, with an empty name when nothing is there.
func FeatureAtHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		feature, err := deps.Guide.GetFeature(c.UserContext(), p)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(feature)
	}
}

// ListFeaturesHandler returns the features inside a rectangle as one
// paginated JSON document.
func ListFeaturesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rect, err := queryRectangle(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		features, err := deps.Guide.FeaturesWithin(c.UserContext(), rect)
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: len(features)}
		start, end := pg.clampRange()
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: features[start:end], Pagination: pg})
	}
}

// StreamFeaturesHandler is the server-streaming form of the range query:
// one NDJSON line per feature, flushed as produced, until the matching set
// is exhausted.
func StreamFeaturesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rect, err := queryRectangle(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		guide := deps.Guide
		logger := LoggerFromCtx(c.UserContext())

		c.Set(fiber.HeaderContentType, "application/x-ndjson")
		// The stream writer runs after this handler returns; it must not
		// touch the fiber context again.
		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			sender := newNDJSONFeatureSender(w)
			if err := guide.ListFeatures(context.Background(), rect, sender); err != nil {
				logger.Warn("feature stream aborted", "error", err)
			}
		}))
		return nil
	}
}

// RecordRouteHandler is the client-streaming call: the request body is an
// NDJSON stream of points, consumed incrementally, answered with a single
// route summary once the body ends.
func RecordRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stream := newPointScanner(c.Context().RequestBodyStream())

		summary, err := deps.Guide.RecordRoute(c.UserContext(), stream)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(summary)
	}
}

// StatsHandler reports dataset and note-history sizes.
func StatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-cache")
		return c.JSON(fiber.Map{
			"features": deps.Guide.FeatureCount(),
			"notes":    deps.Guide.NoteCount(),
		})
	}
}
