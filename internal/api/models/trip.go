package models

import (
	"github.com/routelogpro/routelogpro/internal/degraded"
	"github.com/routelogpro/routelogpro/internal/gazetteer"
	"github.com/routelogpro/routelogpro/internal/hos"
	"github.com/routelogpro/routelogpro/internal/mapview"
	"github.com/routelogpro/routelogpro/internal/trip"
)

// TripList is the response for listing a user's trips.
type TripList struct {
	Trips []*trip.Trip `json:"trips"`
}

// DutySummaryDay is one day of the per-status duty breakdown. The status
// fields keep the upstream wire names so charts can consume them directly.
type DutySummaryDay struct {
	hos.DayTotals

	Total          float64 `json:"total"`
	TotalFormatted string  `json:"total_formatted"`
}

// DutySummary is the response for a trip's duty-status breakdown.
type DutySummary struct {
	TripID string `json:"tripId"`

	// StatusOrder is the fixed stacking order for chart rendering.
	StatusOrder [4]hos.Status `json:"statusOrder"`

	CycleLimitHours float64 `json:"cycleLimitHours"`

	Days []DutySummaryDay `json:"days"`
}

// TripMapView is the response for a trip's resolved map view.
type TripMapView struct {
	TripID string `json:"tripId"`
	mapview.View
}

// TripWarnings is the response for a trip's degraded-data report.
type TripWarnings struct {
	TripID string `json:"tripId"`
	degraded.Report
}

// LocationOptions is the response for the curated location search.
type LocationOptions struct {
	Options []gazetteer.Option `json:"options"`
}
