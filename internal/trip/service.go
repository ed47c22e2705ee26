package trip

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/routelogpro/routelogpro/internal/location"
)

// CycleLimitHours is the 70-hour/8-day cycle limit for property carriers.
// A driver at or above the limit has no hours left to plan against.
const CycleLimitHours = 70

// PlanRequest is the trip submission payload forwarded to the external
// route/HOS planning service.
type PlanRequest struct {
	CurrentLocation  string  `json:"current_location"`
	PickupLocation   string  `json:"pickup_location"`
	DropoffLocation  string  `json:"dropoff_location"`
	CurrentCycleUsed float64 `json:"current_cycle_used"`
}

// Planner computes a trip plan from the request. Implemented by the
// planner HTTP client; this package only consumes the result.
type Planner interface {
	PlanTrip(ctx context.Context, req PlanRequest) (*PlanResult, error)
}

// ServiceConfig holds configuration for the trip service.
type ServiceConfig struct {
	Planner Planner
	Repo    Repository
	Logger  zerolog.Logger
}

// Service owns the trip submission workflow: validate, plan via the
// external service, persist, and serve persisted trips back.
type Service struct {
	planner Planner
	repo    Repository
	logger  zerolog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService creates a new trip service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		planner:  cfg.Planner,
		repo:     cfg.Repo,
		logger:   cfg.Logger,
		inflight: make(map[string]struct{}),
	}
}

// Create submits a trip request to the planner and persists the result.
// Submissions are single-flight per user: a second submission while one is
// outstanding fails with ErrPlanInProgress, mirroring the disabled submit
// control in the dashboard. On planner failure nothing is persisted and
// the caller's inputs remain valid for resubmission.
func (s *Service) Create(ctx context.Context, userID string, req PlanRequest) (*Trip, error) {
	if fieldErrors := validatePlanRequest(req); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if !s.begin(userID) {
		return nil, ErrPlanInProgress
	}
	defer s.end(userID)

	result, err := s.planner.PlanTrip(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("user_id", userID).
			Msg("trip plan request failed")
		return nil, err
	}

	now := time.Now().UTC()
	trip := &Trip{
		ID:               "trp_" + uuid.New().String()[:22],
		CreatedBy:        userID,
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
		RouteSummary:     result.RouteSummary,
		HosLogs:          result.HosLogs,
		MapData:          result.MapData,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("trip_id", trip.ID).
		Str("user_id", userID).
		Float64("distance_miles", trip.RouteSummary.DistanceMiles).
		Int("days_planned", len(trip.HosLogs)).
		Bool("fallback_route", trip.RouteSummary.FallbackRoute).
		Msg("trip plan created")

	return trip, nil
}

// Get retrieves a trip owned by the user.
func (s *Service) Get(ctx context.Context, userID, tripID string) (*Trip, error) {
	return s.repo.GetByUserAndID(ctx, userID, tripID)
}

// List retrieves the user's trips, most recent first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*Trip, error) {
	return s.repo.ListByUser(ctx, userID, ListOptions{Limit: limit})
}

// begin marks a submission in flight for the user. Returns false if one
// is already outstanding.
func (s *Service) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[userID]; busy {
		return false
	}
	s.inflight[userID] = struct{}{}
	return true
}

func (s *Service) end(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, userID)
}

func validatePlanRequest(req PlanRequest) []FieldError {
	var errs []FieldError

	errs = append(errs, validateLocationValue("current_location", req.CurrentLocation)...)
	errs = append(errs, validateLocationValue("pickup_location", req.PickupLocation)...)
	errs = append(errs, validateLocationValue("dropoff_location", req.DropoffLocation)...)

	if req.CurrentCycleUsed < 0 {
		errs = append(errs, FieldError{Field: "current_cycle_used", Message: "must be zero or positive"})
	} else if req.CurrentCycleUsed >= CycleLimitHours {
		errs = append(errs, FieldError{Field: "current_cycle_used", Message: "driver has no remaining cycle hours available"})
	}

	return errs
}

// validateLocationValue checks a location field. Free text is accepted as
// is; a pinned-location value must carry an in-range coordinate.
func validateLocationValue(field, value string) []FieldError {
	if value == "" {
		return []FieldError{{Field: field, Message: "is required"}}
	}
	if coord, ok := location.DecodePin(value); ok && !coord.Valid() {
		return []FieldError{{Field: field, Message: "pinned coordinates are out of range"}}
	}
	return nil
}
