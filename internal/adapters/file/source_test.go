package file_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samirrijal/waymark/internal/adapters/file"
)

func TestSourceLoadFeatures(t *testing.T) {
	src := file.NewSource(filepath.Join("testdata", "features.json"))

	features, err := src.LoadFeatures(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(features) != 4 {
		t.Fatalf("loaded %d features, want 4", len(features))
	}

	// File order must be preserved.
	first := features[0]
	if first.Location.Latitude != 409146138 || first.Location.Longitude != -746188906 {
		t.Errorf("first feature location = %+v", first.Location)
	}
	if first.Name == "" {
		t.Error("first feature name is empty")
	}

	// Unnamed entries are valid.
	if features[2].Name != "" {
		t.Errorf("third feature name = %q, want empty", features[2].Name)
	}
}

func TestSourceLoadFeatures_MissingFile(t *testing.T) {
	src := file.NewSource(filepath.Join("testdata", "no_such_file.json"))
	if _, err := src.LoadFeatures(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}
