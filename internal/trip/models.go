// Package trip provides the trip-plan domain: the result structure returned
// by the external route/HOS planning service, persistence of generated
// plans, and the submission workflow.
package trip

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/routelogpro/routelogpro/internal/hos"
	"github.com/routelogpro/routelogpro/pkg/geo"
)

// Domain errors.
var (
	// ErrTripNotFound indicates the trip does not exist or belongs to another user.
	ErrTripNotFound = errors.New("trip not found")

	// ErrPlanInProgress indicates the user already has a plan submission outstanding.
	// Submissions are single-flight per user; a new one replaces the previous
	// result only after it completes.
	ErrPlanInProgress = errors.New("a trip plan request is already in progress")

	// ErrPlannerUnavailable indicates the route/HOS planning service could not
	// be reached or failed; the request may be retried.
	ErrPlannerUnavailable = errors.New("trip planning service unavailable")

	// ErrCredentialRejected indicates the upstream planner rejected the bearer
	// credential. Never retried here; surfaced to the session layer.
	ErrCredentialRejected = errors.New("planner rejected the bearer credential")

	// ErrInvalidTripRequest indicates the planner rejected the trip inputs.
	ErrInvalidTripRequest = errors.New("invalid trip request")
)

// Trip is a persisted trip plan: the user's inputs plus the plan result
// returned by the external planner. The plan portion is immutable once
// received; a new submission creates a new Trip rather than patching one.
type Trip struct {
	ID               string       `json:"id"`
	CreatedBy        string       `json:"created_by,omitempty"`
	CurrentLocation  string       `json:"current_location"`
	PickupLocation   string       `json:"pickup_location"`
	DropoffLocation  string       `json:"dropoff_location"`
	CurrentCycleUsed float64      `json:"current_cycle_used"`
	RouteSummary     RouteSummary `json:"route_summary"`
	HosLogs          []hos.DayLog `json:"hos_logs"`
	MapData          MapData      `json:"map_data"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// PlanResult is the planner's response body: the three sections of a trip
// plan, shaped exactly as the upstream wire contract delivers them.
type PlanResult struct {
	RouteSummary RouteSummary `json:"route_summary"`
	HosLogs      []hos.DayLog `json:"hos_logs"`
	MapData      MapData      `json:"map_data"`
}

// RouteSummary describes the computed route: totals, legs, planned stops,
// and the data-quality markers (fallback routing, geocoding notes).
type RouteSummary struct {
	DistanceMiles float64         `json:"distance_miles"`
	DurationHours float64         `json:"duration_hours"`
	Legs          []RouteLeg      `json:"legs"`
	Stops         []Stop          `json:"stops"`
	FallbackRoute bool            `json:"fallback_route,omitempty"`
	Geocoding     []GeocodingNote `json:"geocoding"`
}

// RouteLeg is one segment of the route. Segment indexes are 1-based and
// increasing; summed leg distances approximate (not exactly equal, due to
// rounding) the route totals.
type RouteLeg struct {
	Segment       int     `json:"segment"`
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
}

// Stop is a planned trip event. Timestamp is nil when the upstream system
// could not determine the exact time.
type Stop struct {
	Type      string     `json:"type"`
	Details   string     `json:"details"`
	Timestamp *time.Time `json:"timestamp"`
}

// GeocodingNote records how one location string was resolved. Every
// location that could not be matched to a precise point produces exactly
// one note with Approximate set.
type GeocodingNote struct {
	Query       string `json:"query"`
	DisplayName string `json:"display_name"`
	Approximate bool   `json:"approximate"`
}

// MapData holds the renderable route geometry.
type MapData struct {
	Polyline Polyline    `json:"polyline"`
	Markers  []MapMarker `json:"markers"`
}

// MapMarker is a labeled point on the map. Approximate is inherited from
// geocoding and forces an estimated-coordinate annotation when rendered.
type MapMarker struct {
	Label       string  `json:"label"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Approximate bool    `json:"approximate,omitempty"`
}

// Coordinate returns the marker position.
func (m MapMarker) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: m.Latitude, Lon: m.Longitude}
}

// Polyline is an ordered coordinate path. The wire format is an array of
// [latitude, longitude] pairs, which is preserved on marshal/unmarshal.
type Polyline []geo.Coordinate

// MarshalJSON encodes the polyline as [[lat, lon], ...].
func (p Polyline) MarshalJSON() ([]byte, error) {
	pairs := make([][2]float64, len(p))
	for i, c := range p {
		pairs[i] = [2]float64{c.Lat, c.Lon}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes [[lat, lon], ...] into coordinates.
func (p *Polyline) UnmarshalJSON(data []byte) error {
	var pairs [][]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	coords := make([]geo.Coordinate, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return fmt.Errorf("polyline point %d: expected [lat, lon] pair, got %d values", i, len(pair))
		}
		coords = append(coords, geo.Coordinate{Lat: pair[0], Lon: pair[1]})
	}
	*p = coords
	return nil
}

// FieldError represents a validation error on a specific trip input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	return "trip validation failed"
}
