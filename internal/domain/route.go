package domain

import (
	"time"

	"github.com/google/uuid"
)

// Route is one ordered stop within a schedule's itinerary: a place plus its
// 1-based position. Within a schedule the orders form a contiguous ascending
// sequence starting at 1 — new stops are appended at count+1 and edits
// replace the whole sequence, so gaps never appear.
type Route struct {
	ID         uuid.UUID `json:"id"`
	ScheduleID uuid.UUID `json:"schedule_id"`
	PlaceID    uuid.UUID `json:"place_id"`
	Order      int       `json:"route_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// RouteStop is a route row joined with its place's display fields, as
// returned by the route list endpoint.
type RouteStop struct {
	Route
	PlaceName    string  `json:"place_name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
}

// RouteEntry is one requested stop in a full route replace: the place to
// visit and the explicit order the caller assigned it. The caller is trusted
// to supply a valid contiguous ordering.
type RouteEntry struct {
	PlaceID uuid.UUID `json:"place_id"`
	Order   int       `json:"route_order"`
}
