package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// Source implements ports.FeatureSource by reading a route-guide JSON db
// file: an array of {"location": {"latitude", "longitude"}, "name"} objects.
// File order becomes store order.
type Source struct {
	path string
}

// NewSource creates a Source for the given path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// LoadFeatures reads and parses the db file.
func (s *Source) LoadFeatures(ctx context.Context) ([]domain.Feature, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read feature db: %w", err)
	}

	var features []domain.Feature
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, fmt.Errorf("parse feature db %s: %w", s.path, err)
	}
	return features, nil
}
