package domain

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Position struct {
	Lat float64
	Lng float64
}

// Valid reports whether the position lies inside the WGS84 coordinate ranges.
// NaN coordinates fail every comparison and are reported invalid.
func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Return the position as [lon, lat] for external routing API compatibility.
func (p Position) CoordsToList() []float64 { return []float64{p.Lng, p.Lat} }
