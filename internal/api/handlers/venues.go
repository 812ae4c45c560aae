package handlers

import (
	"log"
	"net/http"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/ports"
)

type VenueHandler struct {
	Repo ports.VenueRepository
}

// List returns the stored venue catalog.
func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	venues, err := h.Repo.ListVenues(r.Context())
	if err != nil {
		log.Printf("list venues failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVenuesResponse{Venues: make([]dto.VenueResponse, 0, len(venues))}
	for _, v := range venues {
		tags := v.Tags
		if tags == nil {
			tags = []string{}
		}
		res.Venues = append(res.Venues, dto.VenueResponse{
			ID:            v.ID,
			Name:          v.Name,
			Position:      dto.CoordinatePoint{Lat: v.Position.Lat, Lng: v.Position.Lng},
			VisitDuration: v.VisitDuration,
			Category:      string(v.Category),
			Popularity:    v.Popularity,
			Tags:          tags,
			Address:       v.Address,
			WebsiteURL:    v.WebsiteURL,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
