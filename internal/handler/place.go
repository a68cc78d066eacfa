package handler

import (
	"net/http"
)

// listPlacesByArea handles GET /places. All three area filters (country,
// city, district) are optional; omitting them all pages through the whole
// catalog.
func (s *Server) listPlacesByArea(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := s.places.FindByArea(r.Context(), q.Get("country"), q.Get("city"), q.Get("district"), parsePagination(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// searchPlaces handles GET /places/search. With lat and lon present the
// results carry the distance from that point; ranking stays keyword-driven
// either way.
func (s *Server) searchPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := q.Get("keyword")

	if q.Get("lat") != "" || q.Get("lon") != "" {
		lat, err := parseFloat(r, "lat")
		if err != nil {
			respondRequestError(w, err.Error())
			return
		}
		lon, err := parseFloat(r, "lon")
		if err != nil {
			respondRequestError(w, err.Error())
			return
		}

		page, err := s.places.SearchByKeywordNearby(r.Context(), keyword, lat, lon, parsePagination(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, page)
		return
	}

	page, err := s.places.SearchByKeyword(r.Context(), keyword, parsePagination(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// listPlacesNearby handles GET /places/nearby.
func (s *Server) listPlacesNearby(w http.ResponseWriter, r *http.Request) {
	lat, err := parseFloat(r, "lat")
	if err != nil {
		respondRequestError(w, err.Error())
		return
	}
	lon, err := parseFloat(r, "lon")
	if err != nil {
		respondRequestError(w, err.Error())
		return
	}
	radius, err := parseFloat(r, "radius_km")
	if err != nil {
		respondRequestError(w, err.Error())
		return
	}

	page, err := s.places.FindNearby(r.Context(), lat, lon, radius, parsePagination(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}
