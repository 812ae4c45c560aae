package travel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// ORSTravelProvider implements TravelProvider against the OpenRouteService
// matrix endpoint. Lookups that fail for any reason (network, quota, bad
// payload) are absorbed by falling back to the haversine estimate, so a
// routing outage degrades accuracy instead of failing the planning request.
//
// The provider is safe for concurrent use.
type ORSTravelProvider struct {
	session  *http.Client
	apiKey   string
	baseURL  string
	profile  string
	fallback *HaversineProvider
}

func NewORSTravelProvider(apiKey, profile string, fallback *HaversineProvider) (*ORSTravelProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if profile == "" {
		profile = "driving-car"
	}
	if fallback == nil {
		return nil, errors.New("ORS fallback provider is nil")
	}

	return &ORSTravelProvider{
		session:  &http.Client{Timeout: 10 * time.Second},
		apiKey:   apiKey,
		baseURL:  "https://api.openrouteservice.org",
		profile:  profile,
		fallback: fallback,
	}, nil
}

// Delegate to the batched path to reuse the matrix endpoint.
func (o *ORSTravelProvider) Travel(ctx context.Context, from, to domain.Position) (ports.TravelEstimate, error) {
	row, err := o.TravelRow(ctx, from, []domain.Position{to})
	if err != nil {
		return ports.TravelEstimate{}, err
	}
	if len(row) != 1 {
		return ports.TravelEstimate{}, fmt.Errorf("expected 1 estimate, got %d", len(row))
	}
	return row[0], nil
}

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// TravelRow fetches one origin->many row from the ORS matrix endpoint.
// Any failure falls back to haversine estimates for the whole row.
func (o *ORSTravelProvider) TravelRow(ctx context.Context, from domain.Position, to []domain.Position) (_ []ports.TravelEstimate, err error) {
	defer obs.Time(ctx, "ors.TravelRow")(&err)

	if len(to) == 0 {
		return []ports.TravelEstimate{}, nil
	}

	row, fetchErr := o.fetchMatrixRow(ctx, from, to)
	if fetchErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("ors matrix lookup failed, using haversine fallback: %v", fetchErr)
		return o.fallback.TravelRow(ctx, from, to)
	}
	return row, nil
}

func (o *ORSTravelProvider) fetchMatrixRow(ctx context.Context, from domain.Position, to []domain.Position) ([]ports.TravelEstimate, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, 1+len(to))
	locations = append(locations, from.CoordsToList())
	for _, p := range to {
		locations = append(locations, p.CoordsToList())
	}

	destIdx := make([]int, 0, len(to))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, fmt.Errorf(
			"expected 1 source row; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}

	rowDistances := mr.Distances[0]
	rowDurations := mr.Durations[0]
	if len(rowDistances) != len(to) || len(rowDurations) != len(to) {
		return nil, fmt.Errorf(
			"row lengths do not match destinations: distances=%d durations=%d destinations=%d",
			len(rowDistances), len(rowDurations), len(to),
		)
	}

	out := make([]ports.TravelEstimate, len(to))
	for i := range to {
		metersPtr := rowDistances[i]
		secondsPtr := rowDurations[i]
		if metersPtr == nil || secondsPtr == nil {
			return nil, fmt.Errorf("matrix returned no metrics for destination %d", i)
		}

		// ORS returns float meters/seconds; the planner works in whole
		// meters and minutes.
		minutes := int(math.Round(*secondsPtr / 60))
		if minutes < 1 && *secondsPtr > 0 {
			minutes = 1
		}
		out[i] = ports.TravelEstimate{
			DistanceMeters: int(math.Round(*metersPtr)),
			TravelMinutes:  minutes,
		}
	}

	return out, nil
}
