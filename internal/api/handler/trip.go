package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/routelogpro/routelogpro/internal/api/models"
	"github.com/routelogpro/routelogpro/internal/api/response"
	"github.com/routelogpro/routelogpro/internal/degraded"
	"github.com/routelogpro/routelogpro/internal/hos"
	"github.com/routelogpro/routelogpro/internal/mapview"
	"github.com/routelogpro/routelogpro/internal/trip"
)

const (
	defaultTripListLimit = 20
	maxTripListLimit     = 100
)

// TripHandler handles trip planning endpoints.
type TripHandler struct {
	tripService *trip.Service
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *trip.Service) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

// CreateTrip handles POST /v1/trips - submit a trip for planning.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	var req trip.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	created, err := h.tripService.Create(r.Context(), userID, req)
	if err != nil {
		var verr *trip.ValidationError
		switch {
		case errors.As(err, &verr):
			fieldErrors := make([]models.FieldError, len(verr.Errors))
			for i, e := range verr.Errors {
				fieldErrors[i] = models.FieldError{Field: e.Field, Message: e.Message}
			}
			response.BadRequest(w, r, "validation error", fieldErrors)
		case errors.Is(err, trip.ErrPlanInProgress):
			response.Conflict(w, r, "a trip plan request is already in progress")
		case errors.Is(err, trip.ErrCredentialRejected):
			response.Unauthorized(w, r, "planning service rejected the session credential")
		case errors.Is(err, trip.ErrInvalidTripRequest):
			response.BadRequest(w, r, err.Error(), nil)
		case errors.Is(err, trip.ErrPlannerUnavailable):
			response.ServiceUnavailable(w, r, "trip planning service is unavailable, please try again")
		default:
			response.InternalError(w, r, "trip planning failed")
		}
		return
	}

	response.Created(w, r, "/v1/trips/"+created.ID, created)
}

// ListTrips handles GET /v1/trips - list the user's trips, most recent first.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	limit := defaultTripListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, r, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}
	if limit > maxTripListLimit {
		limit = maxTripListLimit
	}

	trips, err := h.tripService.List(r.Context(), userID, limit)
	if err != nil {
		response.InternalError(w, r, "failed to list trips")
		return
	}
	if trips == nil {
		trips = []*trip.Trip{}
	}

	response.JSON(w, r, http.StatusOK, models.TripList{Trips: trips})
}

// GetTrip handles GET /v1/trips/{tripID} - fetch one trip.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTrip(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, t)
}

// GetDutySummary handles GET /v1/trips/{tripID}/duty-summary - the per-day,
// per-status hour breakdown used by the duty chart.
func (h *TripHandler) GetDutySummary(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	totals := hos.Aggregate(t.HosLogs)
	days := make([]models.DutySummaryDay, len(totals))
	for i, row := range totals {
		days[i] = models.DutySummaryDay{
			DayTotals:      row,
			Total:          row.Total(),
			TotalFormatted: hos.FormatHours(row.Total()),
		}
	}

	summary := models.DutySummary{
		TripID:          t.ID,
		StatusOrder:     hos.StackOrder,
		CycleLimitHours: trip.CycleLimitHours,
		Days:            days,
	}
	response.JSON(w, r, http.StatusOK, summary)
}

// GetMapView handles GET /v1/trips/{tripID}/mapview - the resolved map
// viewport, markers, and encoded route polyline.
func (h *TripHandler) GetMapView(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	view := models.TripMapView{
		TripID: t.ID,
		View:   mapview.Resolve(t.MapData),
	}
	response.JSON(w, r, http.StatusOK, view)
}

// GetWarnings handles GET /v1/trips/{tripID}/warnings - the degraded-data
// report for the trip.
func (h *TripHandler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	warnings := models.TripWarnings{
		TripID: t.ID,
		Report: degraded.Inspect(&t.RouteSummary, t.MapData, t.HosLogs),
	}
	response.JSON(w, r, http.StatusOK, warnings)
}

// loadTrip fetches the trip named in the URL, scoped to the caller. On
// failure it writes the error response and returns ok=false.
func (h *TripHandler) loadTrip(w http.ResponseWriter, r *http.Request) (*trip.Trip, bool) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return nil, false
	}

	tripID := chi.URLParam(r, "tripID")
	if tripID == "" {
		response.BadRequest(w, r, "tripID is required", nil)
		return nil, false
	}

	t, err := h.tripService.Get(r.Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip not found")
			return nil, false
		}
		response.InternalError(w, r, "failed to load trip")
		return nil, false
	}
	return t, true
}
