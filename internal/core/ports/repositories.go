package ports

import (
	"context"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// FeatureSource supplies the static feature dataset at service construction.
// The returned slice preserves the source's insertion order, which is the
// order range queries stream features in.
type FeatureSource interface {
	LoadFeatures(ctx context.Context) ([]domain.Feature, error)
}
