package domain

// CoordFactor converts fixed-point coordinate values to decimal degrees.
const CoordFactor = 1e7

// Point is a geographic coordinate stored as fixed-point integers:
// degrees scaled by 1e7, the E7 convention. Equality is exact integer
// equality, so Point values are directly comparable with ==.
type Point struct {
	Latitude  int32 `json:"latitude"`
	Longitude int32 `json:"longitude"`
}

// Degrees returns the decimal-degree form of the point.
func (p Point) Degrees() (lat, lon float64) {
	return float64(p.Latitude) / CoordFactor, float64(p.Longitude) / CoordFactor
}

// Rectangle is an axis-aligned query region between two corner points.
// Lo and Hi are not required to be the actual low/high corners;
// Bounds normalizes per axis.
type Rectangle struct {
	Lo Point `json:"lo"`
	Hi Point `json:"hi"`
}

// Bounds returns the normalized edges of the rectangle:
// left/right are the min/max longitudes, bottom/top the min/max latitudes.
func (r Rectangle) Bounds() (left, right, bottom, top int32) {
	left, right = r.Lo.Longitude, r.Hi.Longitude
	if left > right {
		left, right = right, left
	}
	bottom, top = r.Lo.Latitude, r.Hi.Latitude
	if bottom > top {
		bottom, top = top, bottom
	}
	return left, right, bottom, top
}

// Contains reports whether p lies within the rectangle, inclusive on
// all four edges.
func (r Rectangle) Contains(p Point) bool {
	left, right, bottom, top := r.Bounds()
	return p.Longitude >= left && p.Longitude <= right &&
		p.Latitude >= bottom && p.Latitude <= top
}
