// Package geo provides geographic primitives shared across the trip
// visualization pipeline: coordinates, bounding boxes, haversine distance,
// and Google polyline encoding (precision 5) for compact geometry transport.
package geo

import (
	"math"
)

// Coordinate represents a geographic point with latitude and longitude.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate is within the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

// NewBounds returns the degenerate box containing only c.
func NewBounds(c Coordinate) Bounds {
	return Bounds{MinLat: c.Lat, MinLon: c.Lon, MaxLat: c.Lat, MaxLon: c.Lon}
}

// BoundsOf computes the bounding box enclosing every coordinate in coords.
// The second return value is false when coords is empty.
func BoundsOf(coords []Coordinate) (Bounds, bool) {
	if len(coords) == 0 {
		return Bounds{}, false
	}
	b := NewBounds(coords[0])
	for _, c := range coords[1:] {
		b = b.Extend(c)
	}
	return b, true
}

// Extend returns the smallest box containing both b and c.
func (b Bounds) Extend(c Coordinate) Bounds {
	return Bounds{
		MinLat: math.Min(b.MinLat, c.Lat),
		MinLon: math.Min(b.MinLon, c.Lon),
		MaxLat: math.Max(b.MaxLat, c.Lat),
		MaxLon: math.Max(b.MaxLon, c.Lon),
	}
}

// Contains reports whether c lies inside the box (inclusive).
func (b Bounds) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// Center returns the geometric center of the box.
func (b Bounds) Center() Coordinate {
	return Coordinate{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// Pad grows the box by the given margin in degrees on every side,
// clamped to the valid coordinate range.
func (b Bounds) Pad(margin float64) Bounds {
	return Bounds{
		MinLat: math.Max(b.MinLat-margin, -90),
		MinLon: math.Max(b.MinLon-margin, -180),
		MaxLat: math.Min(b.MaxLat+margin, 90),
		MaxLon: math.Min(b.MaxLon+margin, 180),
	}
}

// Encode encodes coordinates into a polyline string using Google's polyline
// algorithm at the standard precision of 5 decimal places.
func Encode(coords []Coordinate) string {
	if len(coords) == 0 {
		return ""
	}

	encoded := make([]byte, 0, len(coords)*4)
	prevLat := 0
	prevLon := 0

	for _, coord := range coords {
		lat := int(math.Round(coord.Lat * 1e5))
		lon := int(math.Round(coord.Lon * 1e5))

		encoded = encodeValue(encoded, lat-prevLat)
		encoded = encodeValue(encoded, lon-prevLon)

		prevLat = lat
		prevLon = lon
	}

	return string(encoded)
}

func encodeValue(buf []byte, value int) []byte {
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}

	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	buf = append(buf, byte(value)+63)

	return buf
}

// Decode decodes a polyline-encoded string into coordinates.
func Decode(encoded string) []Coordinate {
	if encoded == "" {
		return nil
	}

	var coords []Coordinate
	index := 0
	lat := 0
	lon := 0

	for index < len(encoded) {
		latDelta, newIndex := decodeValue(encoded, index)
		index = newIndex
		lat += latDelta

		lonDelta, newIndex := decodeValue(encoded, index)
		index = newIndex
		lon += lonDelta

		coords = append(coords, Coordinate{
			Lat: float64(lat) / 1e5,
			Lon: float64(lon) / 1e5,
		})
	}

	return coords
}

func decodeValue(encoded string, index int) (int, int) {
	shift := 0
	result := 0

	for index < len(encoded) {
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index
	}
	return result >> 1, index
}

const earthRadiusMeters = 6371000

// Distance calculates the haversine distance between two coordinates in meters.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// Length calculates the total length of a path in meters.
func Length(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(coords); i++ {
		total += Distance(coords[i-1], coords[i])
	}
	return total
}
