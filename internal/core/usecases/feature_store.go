package usecases

import (
	"iter"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// FeatureStore is the immutable, load-time-populated feature dataset.
// It is safe for unsynchronized concurrent reads.
type FeatureStore struct {
	features []domain.Feature
}

// NewFeatureStore builds a store from the loaded dataset. The slice is
// copied; later mutation of the argument does not affect the store.
func NewFeatureStore(features []domain.Feature) *FeatureStore {
	fs := make([]domain.Feature, len(features))
	copy(fs, features)
	return &FeatureStore{features: fs}
}

// Lookup returns the name of the feature at exactly p, or "" if none.
// When duplicate coordinates exist the earliest loaded feature wins.
func (s *FeatureStore) Lookup(p domain.Point) string {
	for _, f := range s.features {
		if f.Location == p {
			return f.Name
		}
	}
	return ""
}

// Within returns a lazy sequence of the features inside r, in dataset
// order with inclusive bounds. The sequence is restartable: every range
// over it walks the store from the beginning.
func (s *FeatureStore) Within(r domain.Rectangle) iter.Seq[domain.Feature] {
	return func(yield func(domain.Feature) bool) {
		for _, f := range s.features {
			if !r.Contains(f.Location) {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Len returns the number of features in the store.
func (s *FeatureStore) Len() int {
	return len(s.features)
}
