package domain

import (
	"time"

	"github.com/google/uuid"
)

// Place is one entry of the travel place catalog. The catalog is read-only
// from this core's perspective — rows are loaded by an out-of-band import.
// ThumbnailURL comes from the place image flagged as thumbnail, empty when
// the place has no images.
type Place struct {
	ID           uuid.UUID `json:"id"`
	Country      string    `json:"country"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlaceDistance is a place paired with its great-circle distance from the
// reference point of a proximity query.
type PlaceDistance struct {
	Place
	DistanceKm float64 `json:"distance_km"`
}
