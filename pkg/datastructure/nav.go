package datastructure

import "math"

// node identity precision, 6 digits after the decimal point (~0.11 m)
const keyScale = 1e6

// Coordinate is a (longitude, latitude) pair in decimal degrees.
// Field order follows GeoJSON.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{
		Lon: lon,
		Lat: lat,
	}
}

// IsValid reports whether both components are finite numbers.
func (c Coordinate) IsValid() bool {
	return !math.IsNaN(c.Lon) && !math.IsNaN(c.Lat) &&
		!math.IsInf(c.Lon, 0) && !math.IsInf(c.Lat, 0)
}

// NodeKey is a coordinate quantized to 6 decimal digits. Two coordinates with
// the same key are the same graph node.
type NodeKey struct {
	Lon int64
	Lat int64
}

func KeyOf(c Coordinate) NodeKey {
	return NodeKey{
		Lon: int64(math.Round(c.Lon * keyScale)),
		Lat: int64(math.Round(c.Lat * keyScale)),
	}
}

// Coordinate returns the quantized coordinate the key stands for.
func (k NodeKey) Coordinate() Coordinate {
	return Coordinate{
		Lon: float64(k.Lon) / keyScale,
		Lat: float64(k.Lat) / keyScale,
	}
}

// Place is a named campus feature reduced to one representative coordinate.
type Place struct {
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Description string     `json:"description,omitempty"`
	Coord       Coordinate `json:"coordinate"`
}

// PlaceDistance is a place together with its distance in meters from a query point.
type PlaceDistance struct {
	Place
	Dist float64 `json:"distance"`
}
