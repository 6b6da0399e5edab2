package domain

// Feature is a named location in the static dataset. An empty name means
// there is no feature at the location.
type Feature struct {
	Name     string `json:"name"`
	Location Point  `json:"location"`
}

// RouteNote is a short message tagged with a location, exchanged during a
// chat call. Notes are immutable once created.
type RouteNote struct {
	Message  string `json:"message"`
	Location Point  `json:"location"`
}

// RouteSummary is the single response to a recorded route: how many points
// were received, how many of them matched a known feature, the cumulative
// great-circle distance in whole meters, and the wall-clock duration of the
// call in whole seconds.
type RouteSummary struct {
	PointCount   int32 `json:"point_count"`
	FeatureCount int32 `json:"feature_count"`
	Distance     int32 `json:"distance"`
	ElapsedTime  int32 `json:"elapsed_time"`
}
