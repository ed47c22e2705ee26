// Package mapview turns a trip's raw map data into a renderable view:
// a viewport fitted to the route, classified markers, and the path in
// compact polyline encoding. Resolution is a pure function of the stored
// map data; nothing here talks to the planner.
package mapview

import (
	"math"

	"github.com/routelogpro/routelogpro/internal/trip"
	"github.com/routelogpro/routelogpro/pkg/geo"
)

// World default viewport, used when a trip has no renderable geometry.
var (
	WorldCenter = geo.Coordinate{Lat: 20, Lon: 0}
)

const (
	WorldZoom = 2
	MaxZoom   = 15

	// EstimatedLocationNote annotates markers whose coordinates came from
	// approximate geocoding.
	EstimatedLocationNote = "Location estimated due to offline geocoding."
)

// MarkerKind classifies a marker by its role on the route.
type MarkerKind string

const (
	KindCurrent MarkerKind = "current"
	KindPickup  MarkerKind = "pickup"
	KindDropoff MarkerKind = "dropoff"
	KindStop    MarkerKind = "stop"
)

// Reserved marker labels. Classification is exact-match; any other label
// is a rest or fuel stop.
const (
	labelPickup  = "Pickup"
	labelDropoff = "Dropoff"
	labelCurrent = "Current Location"
)

// Marker is a classified, render-ready map marker.
type Marker struct {
	Kind        MarkerKind     `json:"kind"`
	Label       string         `json:"label"`
	Position    geo.Coordinate `json:"position"`
	Approximate bool           `json:"approximate,omitempty"`
	Note        string         `json:"note,omitempty"`
}

// View is the resolved map view for one trip.
type View struct {
	Center     geo.Coordinate `json:"center"`
	Zoom       int            `json:"zoom"`
	Bounds     *geo.Bounds    `json:"bounds,omitempty"`
	HasRoute   bool           `json:"has_route"`
	Polyline   string         `json:"polyline,omitempty"`
	PointCount int            `json:"point_count"`
	Markers    []Marker       `json:"markers"`
}

// Resolve computes the map view for the given map data. The viewport is
// fitted to the bounding box of every valid path point and marker, with
// padding, so the whole route is visible regardless of its shape. Points
// outside the WGS84 range are dropped. With no valid path at all the
// world default viewport is returned; markers are still classified and
// annotated, but never drive the viewport on their own.
func Resolve(data trip.MapData) View {
	path := make([]geo.Coordinate, 0, len(data.Polyline))
	for _, c := range data.Polyline {
		if c.Valid() {
			path = append(path, c)
		}
	}

	markers := make([]Marker, 0, len(data.Markers))
	fit := make([]geo.Coordinate, 0, len(path)+len(data.Markers))
	fit = append(fit, path...)

	for _, m := range data.Markers {
		pos := m.Coordinate()
		if !pos.Valid() {
			continue
		}
		marker := Marker{
			Kind:        classify(m.Label),
			Label:       m.Label,
			Position:    pos,
			Approximate: m.Approximate,
		}
		if m.Approximate {
			marker.Note = EstimatedLocationNote
		}
		markers = append(markers, marker)
		fit = append(fit, pos)
	}

	view := View{
		Center:     WorldCenter,
		Zoom:       WorldZoom,
		Markers:    markers,
		PointCount: len(path),
	}

	if len(path) == 0 {
		return view
	}

	bounds, ok := geo.BoundsOf(fit)
	if !ok {
		return view
	}

	bounds = bounds.Pad(fitMargin(bounds))
	view.Bounds = &bounds
	view.Center = bounds.Center()
	view.Zoom = fitZoom(bounds)
	view.HasRoute = true
	view.Polyline = geo.Encode(path)
	return view
}

// classify maps a marker label to its kind.
func classify(label string) MarkerKind {
	switch label {
	case labelCurrent:
		return KindCurrent
	case labelPickup:
		return KindPickup
	case labelDropoff:
		return KindDropoff
	default:
		return KindStop
	}
}

// fitMargin picks the padding for a bounding box: a tenth of its larger
// span, with a floor so single points still get a visible viewport.
func fitMargin(b geo.Bounds) float64 {
	span := math.Max(b.MaxLat-b.MinLat, b.MaxLon-b.MinLon)
	return math.Max(span*0.1, 0.01)
}

// fitZoom derives a tile zoom level from the padded box's larger span.
func fitZoom(b geo.Bounds) int {
	span := math.Max(b.MaxLat-b.MinLat, b.MaxLon-b.MinLon)
	if span <= 0 {
		return MaxZoom
	}
	zoom := int(math.Floor(math.Log2(360 / span)))
	if zoom < WorldZoom {
		return WorldZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
