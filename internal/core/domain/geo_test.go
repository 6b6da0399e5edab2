package domain_test

import (
	"testing"

	"github.com/samirrijal/waymark/internal/core/domain"
)

func TestPointDegrees(t *testing.T) {
	p := domain.Point{Latitude: 409146138, Longitude: -746188906}
	lat, lon := p.Degrees()
	if lat < 40.91 || lat > 40.92 {
		t.Errorf("latitude degrees out of range: %f", lat)
	}
	if lon > -74.61 || lon < -74.62 {
		t.Errorf("longitude degrees out of range: %f", lon)
	}
}

func TestRectangleBounds_Unordered(t *testing.T) {
	// Corners given hi-first must normalize the same as lo-first.
	r := domain.Rectangle{
		Lo: domain.Point{Latitude: 420000000, Longitude: -730000000},
		Hi: domain.Point{Latitude: 400000000, Longitude: -750000000},
	}
	left, right, bottom, top := r.Bounds()
	if left != -750000000 || right != -730000000 {
		t.Errorf("longitude bounds = [%d, %d]", left, right)
	}
	if bottom != 400000000 || top != 420000000 {
		t.Errorf("latitude bounds = [%d, %d]", bottom, top)
	}
}

func TestRectangleContains_InclusiveEdges(t *testing.T) {
	r := domain.Rectangle{
		Lo: domain.Point{Latitude: 10, Longitude: 10},
		Hi: domain.Point{Latitude: 20, Longitude: 20},
	}

	cases := []struct {
		name string
		p    domain.Point
		want bool
	}{
		{"interior", domain.Point{Latitude: 15, Longitude: 15}, true},
		{"bottom-left corner", domain.Point{Latitude: 10, Longitude: 10}, true},
		{"top-right corner", domain.Point{Latitude: 20, Longitude: 20}, true},
		{"left edge", domain.Point{Latitude: 15, Longitude: 10}, true},
		{"just outside left", domain.Point{Latitude: 15, Longitude: 9}, false},
		{"just outside top", domain.Point{Latitude: 21, Longitude: 15}, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.p); got != tc.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestPointEquality(t *testing.T) {
	a := domain.Point{Latitude: 1, Longitude: 1}
	b := domain.Point{Latitude: 1, Longitude: 1}
	if a != b {
		t.Error("identical points must compare equal")
	}
	c := domain.Point{Latitude: 1, Longitude: 2}
	if a == c {
		t.Error("points with different longitudes must not compare equal")
	}
}
