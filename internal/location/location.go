// Package location implements the location-field encoding used across the
// trip form. A field holds one of four kinds of value: empty, a curated
// gazetteer option, a canonical pinned-coordinate string, or free text.
// The pinned form is the round-trippable wire encoding for a map-picked
// point; everything the server needs to recover the point is in the string.
package location

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/routelogpro/routelogpro/internal/gazetteer"
	"github.com/routelogpro/routelogpro/pkg/geo"
)

// pinPattern matches the canonical pinned-location encoding. Coordinates
// are rendered with four decimal places but any decimal count parses.
var pinPattern = regexp.MustCompile(`^Pinned location \((-?\d+\.\d+),\s*(-?\d+\.\d+)\)$`)

// EncodePin renders a coordinate as the canonical pinned-location value.
func EncodePin(c geo.Coordinate) string {
	return fmt.Sprintf("Pinned location (%.4f, %.4f)", c.Lat, c.Lon)
}

// DecodePin recovers the coordinate from a pinned-location value. It
// returns false for anything that is not in the canonical form.
func DecodePin(value string) (geo.Coordinate, bool) {
	m := pinPattern.FindStringSubmatch(value)
	if m == nil {
		return geo.Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, true
}

// Kind classifies a location field value.
type Kind string

const (
	KindEmpty    Kind = "empty"
	KindCurated  Kind = "curated"
	KindPinned   Kind = "pinned"
	KindFreeText Kind = "freetext"
)

// Value is a classified location field value. Coordinate is set only for
// pinned values, Option only for curated ones.
type Value struct {
	Raw        string            `json:"raw"`
	Kind       Kind              `json:"kind"`
	Coordinate *geo.Coordinate   `json:"coordinate,omitempty"`
	Option     *gazetteer.Option `json:"option,omitempty"`
}

// Classify resolves a raw field value to its kind. Pinned values are
// recognized before the gazetteer is consulted so a curated entry can
// never shadow the canonical pin form.
func Classify(raw string) Value {
	if raw == "" {
		return Value{Raw: raw, Kind: KindEmpty}
	}
	if c, ok := DecodePin(raw); ok {
		return Value{Raw: raw, Kind: KindPinned, Coordinate: &c}
	}
	if opt, ok := gazetteer.Find(raw); ok {
		return Value{Raw: raw, Kind: KindCurated, Option: &opt}
	}
	return Value{Raw: raw, Kind: KindFreeText}
}

// PinState tracks where a pin-picking session is in its lifecycle.
type PinState string

const (
	// StateIdle means no point is pending. Sessions start here unless
	// seeded from an existing pinned value.
	StateIdle PinState = "idle"
	// StateSelected means a point is pending confirmation.
	StateSelected PinState = "selected"
)

// PinSession is the state machine behind the map pin picker. Selecting a
// point stages it; Confirm commits it as a canonical value and ends the
// session; Cancel discards the staged point and ends the session.
type PinSession struct {
	state   PinState
	pending geo.Coordinate
}

// NewPinSession starts a session. If the current field value is already a
// pinned encoding, the session is seeded with that point so reopening the
// picker shows the existing pin.
func NewPinSession(currentValue string) *PinSession {
	s := &PinSession{state: StateIdle}
	if c, ok := DecodePin(currentValue); ok {
		s.state = StateSelected
		s.pending = c
	}
	return s
}

// State reports the session's current state.
func (s *PinSession) State() PinState { return s.state }

// Pending returns the staged point, if any.
func (s *PinSession) Pending() (geo.Coordinate, bool) {
	if s.state != StateSelected {
		return geo.Coordinate{}, false
	}
	return s.pending, true
}

// Select stages a point, replacing any previously staged one.
func (s *PinSession) Select(c geo.Coordinate) {
	s.state = StateSelected
	s.pending = c
}

// Confirm commits the staged point and returns its canonical encoding.
// It returns false when nothing is staged; the session is unchanged.
func (s *PinSession) Confirm() (string, bool) {
	if s.state != StateSelected {
		return "", false
	}
	value := EncodePin(s.pending)
	s.state = StateIdle
	s.pending = geo.Coordinate{}
	return value, true
}

// Cancel discards the staged point. The field value the session was
// opened against is untouched.
func (s *PinSession) Cancel() {
	s.state = StateIdle
	s.pending = geo.Coordinate{}
}

// Field is a location field with the three mutually exclusive write paths:
// a curated selection, a confirmed pin, or free text. Each write fully
// replaces the previous value.
type Field struct {
	value string
}

// NewField starts a field holding the given value.
func NewField(value string) *Field { return &Field{value: value} }

// Value returns the committed raw value.
func (f *Field) Value() string { return f.value }

// Classify classifies the committed value.
func (f *Field) Classify() Value { return Classify(f.value) }

// SetCurated commits a gazetteer option's canonical value.
func (f *Field) SetCurated(opt gazetteer.Option) {
	f.value = opt.Value
}

// SetText commits free text verbatim.
func (f *Field) SetText(text string) {
	f.value = text
}

// ConfirmPin commits the session's staged point as a pinned value. It
// returns false, leaving the field untouched, when nothing is staged.
func (f *Field) ConfirmPin(s *PinSession) bool {
	value, ok := s.Confirm()
	if !ok {
		return false
	}
	f.value = value
	return true
}

// Clear empties the field.
func (f *Field) Clear() {
	f.value = ""
}
