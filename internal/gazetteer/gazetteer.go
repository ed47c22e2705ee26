// Package gazetteer provides the curated location options offered by the
// trip form's location picker. Selecting an option commits its canonical
// value string; anything else typed into the field is free text.
package gazetteer

import "strings"

// Option is a curated location: a display label, its state, and the
// canonical value written into the location field when selected.
type Option struct {
	Label string `json:"label"`
	State string `json:"state"`
	Value string `json:"value"`
}

// options covers major US freight hubs. Values double as geocodable
// queries for the upstream planner.
var options = []Option{
	{Label: "Atlanta", State: "Georgia", Value: "Atlanta, GA"},
	{Label: "Chicago", State: "Illinois", Value: "Chicago, IL"},
	{Label: "Columbus", State: "Ohio", Value: "Columbus, OH"},
	{Label: "Dallas", State: "Texas", Value: "Dallas, TX"},
	{Label: "Denver", State: "Colorado", Value: "Denver, CO"},
	{Label: "Houston", State: "Texas", Value: "Houston, TX"},
	{Label: "Indianapolis", State: "Indiana", Value: "Indianapolis, IN"},
	{Label: "Jacksonville", State: "Florida", Value: "Jacksonville, FL"},
	{Label: "Kansas City", State: "Missouri", Value: "Kansas City, MO"},
	{Label: "Laredo", State: "Texas", Value: "Laredo, TX"},
	{Label: "Los Angeles", State: "California", Value: "Los Angeles, CA"},
	{Label: "Memphis", State: "Tennessee", Value: "Memphis, TN"},
	{Label: "Nashville", State: "Tennessee", Value: "Nashville, TN"},
	{Label: "New York", State: "New York", Value: "New York, NY"},
	{Label: "Oklahoma City", State: "Oklahoma", Value: "Oklahoma City, OK"},
	{Label: "Phoenix", State: "Arizona", Value: "Phoenix, AZ"},
	{Label: "Portland", State: "Oregon", Value: "Portland, OR"},
	{Label: "Salt Lake City", State: "Utah", Value: "Salt Lake City, UT"},
	{Label: "Savannah", State: "Georgia", Value: "Savannah, GA"},
	{Label: "Seattle", State: "Washington", Value: "Seattle, WA"},
	{Label: "St. Louis", State: "Missouri", Value: "St. Louis, MO"},
}

// Options returns all curated options in display order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// Find returns the option whose canonical value matches exactly.
func Find(value string) (Option, bool) {
	for _, opt := range options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// Search returns options whose label, state, or value contains the query,
// case-insensitively. An empty query matches everything. Limit <= 0 means
// no limit.
func Search(query string, limit int) []Option {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []Option
	for _, opt := range options {
		if q == "" ||
			strings.Contains(strings.ToLower(opt.Label), q) ||
			strings.Contains(strings.ToLower(opt.State), q) ||
			strings.Contains(strings.ToLower(opt.Value), q) {
			out = append(out, opt)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}
