// Package degraded inspects a trip plan for partial-failure markers and
// builds the consolidated warning view shown alongside the trip summary.
// Degraded data is not an error state: the plan still renders, with these
// notices layered on top.
package degraded

import (
	"fmt"
	"strings"

	"github.com/routelogpro/routelogpro/internal/hos"
	"github.com/routelogpro/routelogpro/internal/trip"
	"github.com/routelogpro/routelogpro/pkg/geo"
)

// Severity ranks a notice. Warnings flag data-quality gaps in the plan
// itself; info notices explain how a result was computed.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notice codes.
const (
	CodeApproximateLocations = "approximate_locations"
	CodeDistanceMismatch     = "distance_mismatch"
	CodeFallbackRoute        = "fallback_route"
	CodeUnrecognizedStatus   = "unrecognized_status"
)

// Notice is one surfaced data-quality message.
type Notice struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Items    []string `json:"items,omitempty"`
}

// Report is the consolidated warning view for one trip.
type Report struct {
	Notices []Notice `json:"notices"`
}

// Degraded reports whether any notice is present.
func (r Report) Degraded() bool { return len(r.Notices) > 0 }

// fallbackRouteMessage matches the established user-facing wording.
const fallbackRouteMessage = "The distance and drive time use an estimated fallback calculation " +
	"because the live routing service was unavailable."

const metersPerMile = 1609.344

// distanceSlack tolerates rounding between the drawn geometry and the
// reported mileage. A polyline sampled sparsely measures short of the road
// it follows, so only an overshoot past this factor is suspect.
const distanceSlack = 1.25

// Inspect builds the degraded-data report for a plan. A nil summary means
// no trip has been generated yet; that state carries no notices. The
// notices are independent and can all appear at once:
//
//   - approximate locations, listing each approximately geocoded query;
//   - fallback routing, when distance and duration are estimates;
//   - a distance mismatch, when the drawn route measures longer than the
//     reported mileage allows;
//   - unrecognized duty statuses, listing log entries excluded from the
//     daily totals.
func Inspect(summary *trip.RouteSummary, data trip.MapData, logs []hos.DayLog) Report {
	if summary == nil {
		return Report{}
	}

	var notices []Notice

	var approx []string
	for _, note := range summary.Geocoding {
		if note.Approximate {
			approx = append(approx, note.Query)
		}
	}
	if len(approx) > 0 {
		notices = append(notices, Notice{
			Code:     CodeApproximateLocations,
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"Some stops are mapped using approximate coordinates due to network limits: %s.",
				strings.Join(approx, ", "),
			),
			Items: approx,
		})
	}

	if summary.FallbackRoute {
		notices = append(notices, Notice{
			Code:     CodeFallbackRoute,
			Severity: SeverityInfo,
			Message:  fallbackRouteMessage,
		})
	}

	if len(data.Polyline) >= 2 && summary.DistanceMiles > 0 {
		drawn := geo.Length(data.Polyline) / metersPerMile
		if drawn > summary.DistanceMiles*distanceSlack {
			notices = append(notices, Notice{
				Code:     CodeDistanceMismatch,
				Severity: SeverityWarning,
				Message: fmt.Sprintf(
					"The drawn route measures %.0f miles but the reported distance is %.0f miles; the map geometry may not match the computed route.",
					drawn, summary.DistanceMiles,
				),
			})
		}
	}

	if unknown := hos.Unrecognized(logs); len(unknown) > 0 {
		items := make([]string, len(unknown))
		for i, u := range unknown {
			items[i] = fmt.Sprintf("day %d: %q", u.Day, u.Status)
		}
		notices = append(notices, Notice{
			Code:     CodeUnrecognizedStatus,
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"Some log entries use an unrecognized duty status and are excluded from the daily totals: %s.",
				strings.Join(items, ", "),
			),
			Items: items,
		})
	}

	return Report{Notices: notices}
}
