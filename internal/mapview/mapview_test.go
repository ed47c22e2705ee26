package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelogpro/routelogpro/internal/trip"
	"github.com/routelogpro/routelogpro/pkg/geo"
)

func chicagoToStLouis() trip.MapData {
	return trip.MapData{
		Polyline: trip.Polyline{
			{Lat: 41.8781, Lon: -87.6298},
			{Lat: 40.1164, Lon: -88.2434},
			{Lat: 38.6270, Lon: -90.1994},
		},
		Markers: []trip.MapMarker{
			{Label: "Current Location", Latitude: 41.8781, Longitude: -87.6298},
			{Label: "Pickup", Latitude: 40.1164, Longitude: -88.2434},
			{Label: "Dropoff", Latitude: 38.6270, Longitude: -90.1994},
			{Label: "Rest stop 1", Latitude: 39.5, Longitude: -89.3},
		},
	}
}

func TestResolveEmptyGeometry(t *testing.T) {
	view := Resolve(trip.MapData{})

	assert.Equal(t, WorldCenter, view.Center)
	assert.Equal(t, WorldZoom, view.Zoom)
	assert.False(t, view.HasRoute)
	assert.Nil(t, view.Bounds)
	assert.Empty(t, view.Polyline)
	assert.Zero(t, view.PointCount)
	assert.Empty(t, view.Markers)
}

func TestResolveFitsRoute(t *testing.T) {
	view := Resolve(chicagoToStLouis())

	assert.True(t, view.HasRoute)
	assert.Equal(t, 3, view.PointCount)
	require.NotNil(t, view.Bounds)

	// Every path point and marker is inside the padded viewport.
	for _, c := range chicagoToStLouis().Polyline {
		assert.True(t, view.Bounds.Contains(c))
	}
	for _, m := range chicagoToStLouis().Markers {
		assert.True(t, view.Bounds.Contains(m.Coordinate()))
	}

	assert.Equal(t, view.Bounds.Center(), view.Center)
	assert.Greater(t, view.Zoom, WorldZoom)
	assert.LessOrEqual(t, view.Zoom, MaxZoom)

	// Geometry round-trips through the encoded polyline.
	decoded := geo.Decode(view.Polyline)
	require.Len(t, decoded, 3)
	assert.InDelta(t, 41.8781, decoded[0].Lat, 0.00001)
	assert.InDelta(t, -90.1994, decoded[2].Lon, 0.00001)
}

func TestResolveMarkerClassification(t *testing.T) {
	view := Resolve(chicagoToStLouis())
	require.Len(t, view.Markers, 4)

	kinds := map[string]MarkerKind{}
	for _, m := range view.Markers {
		kinds[m.Label] = m.Kind
	}
	assert.Equal(t, KindCurrent, kinds["Current Location"])
	assert.Equal(t, KindPickup, kinds["Pickup"])
	assert.Equal(t, KindDropoff, kinds["Dropoff"])
	assert.Equal(t, KindStop, kinds["Rest stop 1"])
}

func TestResolveReservedLabelsAreExactMatch(t *testing.T) {
	view := Resolve(trip.MapData{
		Markers: []trip.MapMarker{
			{Label: "pickup", Latitude: 1, Longitude: 1},
			{Label: "Pickup point", Latitude: 2, Longitude: 2},
			{Label: "Dropoff", Latitude: 3, Longitude: 3},
		},
	})
	require.Len(t, view.Markers, 3)
	assert.Equal(t, KindStop, view.Markers[0].Kind)
	assert.Equal(t, KindStop, view.Markers[1].Kind)
	assert.Equal(t, KindDropoff, view.Markers[2].Kind)
}

func TestResolveApproximateMarkerNote(t *testing.T) {
	view := Resolve(trip.MapData{
		Markers: []trip.MapMarker{
			{Label: "Pickup", Latitude: 40.1, Longitude: -88.2, Approximate: true},
			{Label: "Dropoff", Latitude: 38.6, Longitude: -90.2},
		},
	})
	require.Len(t, view.Markers, 2)
	assert.Equal(t, EstimatedLocationNote, view.Markers[0].Note)
	assert.True(t, view.Markers[0].Approximate)
	assert.Empty(t, view.Markers[1].Note)
}

func TestResolveMarkersOnlyKeepsWorldDefault(t *testing.T) {
	view := Resolve(trip.MapData{
		Markers: []trip.MapMarker{
			{Label: "Pickup", Latitude: 40.1, Longitude: -88.2, Approximate: true},
			{Label: "Dropoff", Latitude: 38.6, Longitude: -90.2},
		},
	})

	// Markers alone never drive the viewport: an empty path means the
	// neutral world view, with markers still classified and annotated.
	assert.False(t, view.HasRoute)
	assert.Equal(t, WorldCenter, view.Center)
	assert.Equal(t, WorldZoom, view.Zoom)
	assert.Nil(t, view.Bounds)
	assert.Empty(t, view.Polyline)
	assert.Zero(t, view.PointCount)

	require.Len(t, view.Markers, 2)
	assert.Equal(t, KindPickup, view.Markers[0].Kind)
	assert.Equal(t, EstimatedLocationNote, view.Markers[0].Note)
	assert.Equal(t, KindDropoff, view.Markers[1].Kind)
}

func TestResolveDropsInvalidPoints(t *testing.T) {
	view := Resolve(trip.MapData{
		Polyline: trip.Polyline{
			{Lat: 41.8, Lon: -87.6},
			{Lat: 95, Lon: 10},
			{Lat: 38.6, Lon: -90.2},
		},
		Markers: []trip.MapMarker{
			{Label: "Dropoff", Latitude: 38.6, Longitude: -200},
		},
	})

	assert.Equal(t, 2, view.PointCount)
	assert.Empty(t, view.Markers)
	require.NotNil(t, view.Bounds)
	assert.False(t, view.Bounds.Contains(geo.Coordinate{Lat: 95, Lon: 10}))
}

func TestFitZoomBoundsSpan(t *testing.T) {
	wide := geo.Bounds{MinLat: -60, MinLon: -170, MaxLat: 60, MaxLon: 170}
	assert.Equal(t, WorldZoom, fitZoom(wide))

	tiny := geo.Bounds{MinLat: 40, MinLon: -88, MaxLat: 40.0001, MaxLon: -87.9999}
	assert.Equal(t, MaxZoom, fitZoom(tiny))
}
