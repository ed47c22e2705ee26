// Package hos provides duty-log models and the per-day duty-status
// aggregation used to chart hours-of-service compliance.
package hos

import (
	"fmt"
	"math"
	"time"
)

// Status is a duty status from the closed HOS vocabulary.
// The wire values are case-sensitive; anything outside the four known
// statuses maps to StatusUnrecognized.
type Status string

const (
	StatusDriving      Status = "Driving"
	StatusOnDuty       Status = "On Duty"
	StatusOffDuty      Status = "Off Duty"
	StatusSleeperBerth Status = "Sleeper Berth"

	// StatusUnrecognized covers any status label outside the known set.
	// Entries carrying it are excluded from aggregation totals and
	// reported separately as a data-quality signal.
	StatusUnrecognized Status = "Unrecognized"
)

// StackOrder is the fixed status order used for chart stacking. Charting
// relies on this order being stable across days and across requests.
var StackOrder = [4]Status{StatusDriving, StatusOnDuty, StatusOffDuty, StatusSleeperBerth}

// ParseStatus maps a wire status label onto the closed vocabulary.
// The match is exact and case-sensitive: "driving" is unrecognized.
func ParseStatus(label string) Status {
	switch Status(label) {
	case StatusDriving, StatusOnDuty, StatusOffDuty, StatusSleeperBerth:
		return Status(label)
	default:
		return StatusUnrecognized
	}
}

// Known reports whether the status is one of the four vocabulary statuses.
func (s Status) Known() bool {
	return s != StatusUnrecognized && ParseStatus(string(s)) == s
}

// Entry is a single duty segment within a day. Status carries the raw
// upstream label; DurationHours must equal End minus Start (an upstream
// consistency invariant this layer never corrects).
type Entry struct {
	Activity      string    `json:"activity"`
	Status        string    `json:"status"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"duration_hours"`
}

// DayLog is one calendar day of duty entries, ordered chronologically.
type DayLog struct {
	Day     int       `json:"day"`
	Start   time.Time `json:"start"`
	Entries []Entry   `json:"entries"`
}

// DayTotals holds the per-status hour totals for a single day. All four
// statuses are always present (zero when unused) so stacked chart series
// line up across days.
type DayTotals struct {
	Day          int     `json:"day"`
	Label        string  `json:"label"`
	Driving      float64 `json:"driving"`
	OnDuty       float64 `json:"on_duty"`
	OffDuty      float64 `json:"off_duty"`
	SleeperBerth float64 `json:"sleeper_berth"`
}

// Hours returns the total for one status.
func (d DayTotals) Hours(s Status) float64 {
	switch s {
	case StatusDriving:
		return d.Driving
	case StatusOnDuty:
		return d.OnDuty
	case StatusOffDuty:
		return d.OffDuty
	case StatusSleeperBerth:
		return d.SleeperBerth
	default:
		return 0
	}
}

// Total returns the summed hours across the four known statuses.
func (d DayTotals) Total() float64 {
	return d.Driving + d.OnDuty + d.OffDuty + d.SleeperBerth
}

// Aggregate reduces a duty log into per-day, per-status hour totals in
// input day order. Entries with an unrecognized status are excluded from
// every total; an empty log yields an empty (zero-day) result, and a day
// without entries yields an all-zero row.
func Aggregate(logs []DayLog) []DayTotals {
	totals := make([]DayTotals, 0, len(logs))
	for _, day := range logs {
		row := DayTotals{
			Day:   day.Day,
			Label: fmt.Sprintf("Day %d", day.Day),
		}
		for _, entry := range day.Entries {
			switch ParseStatus(entry.Status) {
			case StatusDriving:
				row.Driving += entry.DurationHours
			case StatusOnDuty:
				row.OnDuty += entry.DurationHours
			case StatusOffDuty:
				row.OffDuty += entry.DurationHours
			case StatusSleeperBerth:
				row.SleeperBerth += entry.DurationHours
			}
		}
		totals = append(totals, row)
	}
	return totals
}

// UnrecognizedEntry identifies a duty entry whose status fell outside the
// known vocabulary and was therefore dropped from the aggregated totals.
type UnrecognizedEntry struct {
	Day      int     `json:"day"`
	Status   string  `json:"status"`
	Activity string  `json:"activity"`
	Hours    float64 `json:"hours"`
}

// Unrecognized scans a duty log for entries excluded from aggregation.
// The result feeds the degraded-data report so silently dropped hours are
// still visible to the user.
func Unrecognized(logs []DayLog) []UnrecognizedEntry {
	var out []UnrecognizedEntry
	for _, day := range logs {
		for _, entry := range day.Entries {
			if ParseStatus(entry.Status) == StatusUnrecognized {
				out = append(out, UnrecognizedEntry{
					Day:      day.Day,
					Status:   entry.Status,
					Activity: entry.Activity,
					Hours:    entry.DurationHours,
				})
			}
		}
	}
	return out
}

// FormatHours formats a fractional hour count as "<H>h <M>m" with minutes
// rounded to the nearest integer. Minute rounding that lands on 60 carries
// into the hour, so 6.999 renders as "7h 0m" rather than "6h 60m".
func FormatHours(hours float64) string {
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		hours = 0
	}
	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
