package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/geo"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/match"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/repo"
)

// PlaceService implements place discovery over the read-only travel catalog:
// area browsing, keyword relevance search, and great-circle proximity search.
type PlaceService struct {
	places repo.PlaceRepo
}

// NewPlaceService constructs a PlaceService backed by the provided PlaceRepo.
func NewPlaceService(places repo.PlaceRepo) *PlaceService {
	return &PlaceService{places: places}
}

// FindByArea returns one page of places within the country/city/district
// hierarchy, name-ascending. Empty filter values widen the area, so an empty
// country browses the whole catalog. The content slice is never nil.
func (s *PlaceService) FindByArea(ctx context.Context, country, city, district string, p domain.PaginationParams) (domain.Page[domain.Place], error) {
	places, total, err := s.places.ListByArea(ctx, country, city, district, p)
	if err != nil {
		return domain.Page[domain.Place]{}, fmt.Errorf("service.PlaceService.FindByArea: %w", err)
	}
	if places == nil {
		places = []domain.Place{}
	}
	return domain.Page[domain.Place]{Content: places, TotalElements: total}, nil
}

// SearchByKeyword returns one page of places matching keyword anywhere in
// their name, country, city, or district, ordered by the composite relevance
// key (name first, then country, city, district) with an id tie-break for
// deterministic pages.
func (s *PlaceService) SearchByKeyword(ctx context.Context, keyword string, p domain.PaginationParams) (domain.Page[domain.Place], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return domain.Page[domain.Place]{}, fmt.Errorf("%w: keyword is required", domain.ErrValidation)
	}

	candidates, err := s.places.SearchByKeyword(ctx, keyword)
	if err != nil {
		return domain.Page[domain.Place]{}, fmt.Errorf("service.PlaceService.SearchByKeyword: %w", err)
	}

	sortByRelevance(candidates, keyword)
	return domain.PageOf(candidates, p), nil
}

// FindNearby returns one page of places within radiusKm of the reference
// point, closest first, each carrying its distance. Candidates come from a
// coarse bounding-box query; the exact haversine check runs here.
// Returns domain.ErrValidation for non-positive radii or out-of-range
// coordinates.
func (s *PlaceService) FindNearby(ctx context.Context, lat, lon, radiusKm float64, p domain.PaginationParams) (domain.Page[domain.PlaceDistance], error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return domain.Page[domain.PlaceDistance]{}, err
	}
	if radiusKm <= 0 {
		return domain.Page[domain.PlaceDistance]{}, fmt.Errorf("%w: radius must be positive", domain.ErrValidation)
	}

	minLat, maxLat, minLon, maxLon := geo.BoundingBox(lat, lon, radiusKm)
	candidates, err := s.places.ListInBox(ctx, minLat, maxLat, minLon, maxLon)
	if err != nil {
		return domain.Page[domain.PlaceDistance]{}, fmt.Errorf("service.PlaceService.FindNearby: %w", err)
	}

	within := make([]domain.PlaceDistance, 0, len(candidates))
	for _, place := range candidates {
		d := geo.DistanceKm(lat, lon, place.Latitude, place.Longitude)
		if d <= radiusKm {
			within = append(within, domain.PlaceDistance{Place: place, DistanceKm: d})
		}
	}

	sort.SliceStable(within, func(i, j int) bool {
		if within[i].DistanceKm != within[j].DistanceKm {
			return within[i].DistanceKm < within[j].DistanceKm
		}
		return bytes.Compare(within[i].ID[:], within[j].ID[:]) < 0
	})

	return domain.PageOf(within, p), nil
}

// SearchByKeywordNearby combines keyword search with a reference point: the
// relevance key stays the primary order, and each result carries its
// distance as data only; distance does not participate in the sort.
func (s *PlaceService) SearchByKeywordNearby(ctx context.Context, keyword string, lat, lon float64, p domain.PaginationParams) (domain.Page[domain.PlaceDistance], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return domain.Page[domain.PlaceDistance]{}, fmt.Errorf("%w: keyword is required", domain.ErrValidation)
	}
	if err := validateCoordinates(lat, lon); err != nil {
		return domain.Page[domain.PlaceDistance]{}, err
	}

	candidates, err := s.places.SearchByKeyword(ctx, keyword)
	if err != nil {
		return domain.Page[domain.PlaceDistance]{}, fmt.Errorf("service.PlaceService.SearchByKeywordNearby: %w", err)
	}

	sortByRelevance(candidates, keyword)

	ranked := make([]domain.PlaceDistance, len(candidates))
	for i, place := range candidates {
		ranked[i] = domain.PlaceDistance{
			Place:      place,
			DistanceKm: geo.DistanceKm(lat, lon, place.Latitude, place.Longitude),
		}
	}
	return domain.PageOf(ranked, p), nil
}

// sortByRelevance orders places by the composite match key over name,
// country, city, and district, with an ascending id tie-break.
func sortByRelevance(places []domain.Place, keyword string) {
	keys := make([]match.Key, len(places))
	for i, p := range places {
		keys[i] = match.NewKey(keyword, p.Name, p.Country, p.City, p.District)
	}
	idx := make([]int, len(places))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if !keys[idx[a]].Equal(keys[idx[b]]) {
			return keys[idx[a]].Less(keys[idx[b]])
		}
		return bytes.Compare(places[idx[a]].ID[:], places[idx[b]].ID[:]) < 0
	})

	sorted := make([]domain.Place, len(places))
	for i, j := range idx {
		sorted[i] = places[j]
	}
	copy(places, sorted)
}

// validateCoordinates rejects latitudes outside [-90, 90] and longitudes
// outside [-180, 180].
func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude out of range", domain.ErrValidation)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude out of range", domain.ErrValidation)
	}
	return nil
}
