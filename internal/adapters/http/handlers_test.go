package http_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/samirrijal/waymark/internal/adapters/http"
	"github.com/samirrijal/waymark/internal/core/domain"
	"github.com/samirrijal/waymark/internal/core/usecases"
)

// ---- Test helpers ----

func guideFixtures() []domain.Feature {
	return []domain.Feature{
		{Name: "Patriots Path", Location: domain.Point{Latitude: 407838351, Longitude: -746143763}},
		{Name: "Berkshire Valley", Location: domain.Point{Latitude: 409146138, Longitude: -746188906}},
		{Name: "Tremley Point Road", Location: domain.Point{Latitude: 406337092, Longitude: -740122226}},
		{Name: "", Location: domain.Point{Latitude: 404318328, Longitude: -740835638}},
		{Name: "One Degree North", Location: domain.Point{Latitude: 10000000, Longitude: 0}},
	}
}

func makeDeps() *handler.Dependencies {
	store := usecases.NewFeatureStore(guideFixtures())
	board := usecases.NewNoteBoard()
	return &handler.Dependencies{
		Guide: usecases.NewGuideService(store, board, nil, nil),
	}
}

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StreamRequestBody:     true,
	})
	handler.SetupRoutes(app, deps)
	return app
}

// ---- Unary lookup ----

func TestFeatureAt_Hit(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/features/at?latitude=409146138&longitude=-746188906", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var f domain.Feature
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		t.Fatal(err)
	}
	if f.Name != "Berkshire Valley" {
		t.Errorf("expected Berkshire Valley, got %q", f.Name)
	}
	if f.Location.Latitude != 409146138 || f.Location.Longitude != -746188906 {
		t.Errorf("response location does not echo the request: %+v", f.Location)
	}
}

func TestFeatureAt_Unknown(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/features/at?latitude=1&longitude=2", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for unknown location, got %d", resp.StatusCode)
	}

	var f domain.Feature
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		t.Fatal(err)
	}
	if f.Name != "" {
		t.Errorf("expected unnamed feature, got %q", f.Name)
	}
	if f.Location.Latitude != 1 || f.Location.Longitude != 2 {
		t.Errorf("response location does not echo the request: %+v", f.Location)
	}
}

func TestFeatureAt_MissingParam(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/features/at?latitude=1", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Buffered range query ----

func TestListFeatures(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/features?lo_lat=400000000&lo_lon=-750000000&hi_lat=420000000&hi_lon=-730000000", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Feature `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 4 {
		t.Errorf("expected total 4, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 4 {
		t.Errorf("expected 4 features, got %d", len(result.Data))
	}
	// Store order, including the unnamed entry
	if result.Data[0].Name != "Patriots Path" {
		t.Errorf("expected Patriots Path first, got %q", result.Data[0].Name)
	}
	if result.Data[3].Name != "" {
		t.Errorf("expected unnamed feature last, got %q", result.Data[3].Name)
	}
}

func TestListFeatures_Pagination(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/features?lo_lat=400000000&lo_lon=-750000000&hi_lat=420000000&hi_lon=-730000000&offset=1&limit=2", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}

	var result struct {
		Data       []domain.Feature `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 4 {
		t.Errorf("expected total 4, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 features in page, got %d", len(result.Data))
	}
	if result.Data[0].Name != "Berkshire Valley" {
		t.Errorf("expected Berkshire Valley at offset 1, got %q", result.Data[0].Name)
	}
}

func TestListFeatures_MissingBounds(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/features?lo_lat=1&lo_lon=2&hi_lat=3", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Server streaming ----

func TestStreamFeatures(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/features/stream?lo_lat=400000000&lo_lon=-750000000&hi_lat=420000000&hi_lon=-730000000", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/x-ndjson") {
		t.Errorf("expected ndjson content type, got %q", ct)
	}

	dec := json.NewDecoder(resp.Body)
	var got []domain.Feature
	for dec.More() {
		var f domain.Feature
		if err := dec.Decode(&f); err != nil {
			t.Fatal(err)
		}
		got = append(got, f)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 streamed features, got %d", len(got))
	}
	if got[0].Name != "Patriots Path" {
		t.Errorf("expected Patriots Path first, got %q", got[0].Name)
	}
}

func TestStreamFeatures_EmptyRectangle(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/features/stream?lo_lat=500000000&lo_lon=0&hi_lat=510000000&hi_lon=10000000", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for empty result, got %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	if dec.More() {
		t.Error("expected no streamed features")
	}
}

// ---- Client streaming ----

func TestRecordRoute(t *testing.T) {
	app := setupApp(makeDeps())

	body := strings.Join([]string{
		`{"latitude":0,"longitude":0}`,
		`{"latitude":10000000,"longitude":0}`,
		`{"latitude":409146138,"longitude":-746188906}`,
	}, "\n")

	req := httptest.NewRequest("POST", "/v1/trips/record", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-ndjson")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var summary domain.RouteSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatal(err)
	}
	if summary.PointCount != 3 {
		t.Errorf("expected 3 points, got %d", summary.PointCount)
	}
	// One Degree North and Berkshire Valley are known locations
	if summary.FeatureCount != 2 {
		t.Errorf("expected 2 feature visits, got %d", summary.FeatureCount)
	}
	if summary.Distance <= 0 {
		t.Errorf("expected positive distance, got %d", summary.Distance)
	}
}

func TestRecordRoute_EmptyBody(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/trips/record", strings.NewReader(""))
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var summary domain.RouteSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatal(err)
	}
	if summary.PointCount != 0 || summary.FeatureCount != 0 || summary.Distance != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestRecordRoute_MalformedLine(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/trips/record", strings.NewReader("not json\n"))
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- GraphQL ----

func TestGraphQL_FeatureAt(t *testing.T) {
	app := setupApp(makeDeps())

	query := `{"query":"{ featureAt(latitude: 407838351, longitude: -746143763) { name location { latitude longitude } } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			FeatureAt struct {
				Name string `json:"name"`
			} `json:"featureAt"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected graphql errors: %v", result.Errors)
	}
	if result.Data.FeatureAt.Name != "Patriots Path" {
		t.Errorf("expected Patriots Path, got %q", result.Data.FeatureAt.Name)
	}
}

func TestGraphQL_Stats(t *testing.T) {
	app := setupApp(makeDeps())

	query := `{"query":"{ stats { features notes } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}

	var result struct {
		Data struct {
			Stats struct {
				Features int `json:"features"`
				Notes    int `json:"notes"`
			} `json:"stats"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Data.Stats.Features != 5 {
		t.Errorf("expected 5 features, got %d", result.Data.Stats.Features)
	}
	if result.Data.Stats.Notes != 0 {
		t.Errorf("expected 0 notes, got %d", result.Data.Stats.Notes)
	}
}

// ---- Health ----

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestStats(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/stats", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stats struct {
		Features int `json:"features"`
		Notes    int `json:"notes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Features != 5 {
		t.Errorf("expected 5 features, got %d", stats.Features)
	}
}
