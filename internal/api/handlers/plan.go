package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"trip-planner-service/internal/adapters/travel"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// Default daily bounds and meal slots, applied when the request omits them.
const (
	defaultDailyStart = 540  // 9:00 AM
	defaultDailyEnd   = 1260 // 9:00 PM
)

var defaultMealSlots = []domain.MealSlot{
	{Name: "lunch", Start: 690, End: 900},
	{Name: "dinner", Start: 1080, End: 1230},
}

type PlanHandler struct {
	Repo     ports.VenueRepository
	Provider ports.TravelProvider
	Cache    ports.TravelCache // optional cross-request travel cache
}

// Plan orchestrates a single planning request: decode, apply draft edits,
// sequence, assemble, respond. Each request gets its own memoizing provider
// so no planning state is shared between requests.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	venues, err := h.requestVenues(r, req)
	if err != nil {
		log.Printf("load venue catalog failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	cons, err := mapConstraints(req.Constraints)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	edits, err := mapEdits(req.Edits)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.PlanTripRequest{
		Venues:      venues,
		Constraints: cons,
		Edits:       edits,
	}

	provider := travel.NewMemoProvider(h.Provider, h.Cache)
	result, err := services.PlanTrip(r.Context(), svcReq, provider)
	if err != nil {
		if r.Context().Err() != nil {
			// Client went away; the discarded result needs no response.
			return
		}
		// Planning only fails on malformed top-level constraints.
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	assembled := services.Assemble(result, cons)
	writeJSON(w, r, http.StatusOK, mapPlanResponse(assembled, result.Diagnostics))
}

// requestVenues resolves the venue list: inline venues when the request
// carries them, the stored catalog otherwise.
func (h *PlanHandler) requestVenues(r *http.Request, req dto.PlanRequest) ([]domain.Venue, error) {
	if req.Venues != nil {
		venues := make([]domain.Venue, 0, len(req.Venues))
		for _, in := range req.Venues {
			venues = append(venues, mapVenueInput(in))
		}
		return venues, nil
	}

	stored, err := h.Repo.ListVenues(r.Context())
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	venues := make([]domain.Venue, 0, len(stored))
	for _, v := range stored {
		venues = append(venues, *v)
	}
	return venues, nil
}

func mapVenueInput(in dto.VenueInput) domain.Venue {
	v := domain.Venue{
		ID:            in.ID,
		Name:          in.Name,
		Position:      mapPosition(in.Position),
		VisitDuration: in.VisitDuration,
		Category:      domain.Category(in.Category),
		Popularity:    in.Popularity,
		Tags:          in.Tags,
		Address:       in.Address,
		WebsiteURL:    in.WebsiteURL,
	}

	specs := make([]domain.WindowSpec, 0, len(in.OpeningHours))
	for _, w := range in.OpeningHours {
		specs = append(specs, domain.WindowSpec{Weekday: w.Weekday, Start: w.Start, End: w.End})
	}
	hours, err := domain.HoursFromSpecs(specs)
	if err != nil {
		// A bad weekday poisons the record's coordinates so the normalizer
		// rejects this venue alone instead of the whole request.
		v.Position = domain.Position{Lat: math.NaN(), Lng: math.NaN()}
		return v
	}
	v.Hours = hours

	return v
}

// mapPosition turns absent coordinates into NaN so validation rejects them.
func mapPosition(in dto.PositionInput) domain.Position {
	p := domain.Position{Lat: math.NaN(), Lng: math.NaN()}
	if in.Lat != nil {
		p.Lat = *in.Lat
	}
	if in.Lng != nil {
		p.Lng = *in.Lng
	}
	return p
}

func mapConstraints(in *dto.ConstraintsInput) (domain.TripConstraints, error) {
	cons := domain.TripConstraints{
		DayCount:     1,
		DailyStart:   defaultDailyStart,
		DailyEnd:     defaultDailyEnd,
		MealSlots:    defaultMealSlots,
		StartWeekday: time.Monday,
	}
	if in == nil {
		return cons, nil
	}

	if in.DayCount != 0 {
		cons.DayCount = in.DayCount
	}
	if in.DailyStart != nil {
		cons.DailyStart = *in.DailyStart
	}
	if in.DailyEnd != nil {
		cons.DailyEnd = *in.DailyEnd
	}
	if in.MealSlots != nil {
		slots := make([]domain.MealSlot, 0, len(in.MealSlots))
		for _, s := range in.MealSlots {
			slots = append(slots, domain.MealSlot{Name: s.Category, Start: s.Start, End: s.End})
		}
		cons.MealSlots = slots
	}
	if in.StartWeekday != nil {
		if *in.StartWeekday < 0 || *in.StartWeekday > 6 {
			return cons, fmt.Errorf("startWeekday must be between 0 and 6")
		}
		cons.StartWeekday = time.Weekday(*in.StartWeekday)
	}
	if in.Origin != nil {
		p := mapPosition(*in.Origin)
		cons.Origin = &p
	}
	if in.Final != nil {
		p := mapPosition(*in.Final)
		cons.Final = &p
	}

	return cons, nil
}

func mapEdits(in []dto.EditInput) ([]domain.DraftCommand, error) {
	cmds := make([]domain.DraftCommand, 0, len(in))
	for _, e := range in {
		switch e.Op {
		case "remove":
			cmds = append(cmds, domain.RemoveVenue{VenueID: e.VenueID})
		case "rename":
			cmds = append(cmds, domain.RenameVenue{VenueID: e.VenueID, Name: e.Name})
		default:
			return nil, fmt.Errorf("unknown edit op %q", e.Op)
		}
	}
	return cmds, nil
}

func mapPlanResponse(plan *services.AssembledPlan, diags []services.Diagnostic) dto.PlanResponse {
	res := dto.PlanResponse{
		Itinerary: make([]dto.ItineraryItem, 0, len(plan.Items)),
		Coordinates: dto.CoordinateBundle{
			Waypoints: make([]dto.CoordinatePoint, 0, len(plan.Waypoints)),
		},
		Unplaced: plan.Unplaced,
	}

	for _, item := range plan.Items {
		var website *string
		if item.WebsiteURL != "" {
			url := item.WebsiteURL
			website = &url
		}
		res.Itinerary = append(res.Itinerary, dto.ItineraryItem{
			ID:           item.VenueID,
			Name:         item.Name,
			Time:         item.Time,
			Duration:     item.Duration,
			Address:      item.Address,
			OpeningHours: item.OpeningHours,
			Tags:         item.Tags,
			WebsiteURL:   website,
			IsMeal:       item.IsMeal,
		})
	}

	res.Coordinates.Origin = mapRoutePoint(plan.Origin)
	res.Coordinates.Destination = mapRoutePoint(plan.Destination)
	for _, wp := range plan.Waypoints {
		res.Coordinates.Waypoints = append(res.Coordinates.Waypoints, *mapRoutePoint(&wp))
	}

	for _, d := range diags {
		res.Diagnostics = append(res.Diagnostics, dto.DiagnosticItem{VenueID: d.VenueID, Reason: d.Reason})
	}

	return res
}

func mapRoutePoint(p *services.RoutePoint) *dto.CoordinatePoint {
	if p == nil {
		return nil
	}
	return &dto.CoordinatePoint{
		Lat:     p.Position.Lat,
		Lng:     p.Position.Lng,
		Address: p.Address,
	}
}
