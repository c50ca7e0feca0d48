package domain

// Immutable geographic coordinate (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lon float64
}

// Return the coordinate as [lon, lat] for external API compatibility.
func (c Coordinate) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
