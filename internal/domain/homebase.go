package domain

// The optional fixed start/end point of a day's route.
type HomeBase struct {
	Name               string
	Address            string
	Coordinate         *Coordinate
	UseCurrentLocation bool
	Configured         bool
}

// IsReady reports whether the home base can participate in optimization:
// it must be explicitly configured and carry a resolved coordinate.
// Non-ready home bases are ignored and the route starts from the first visit.
func (h *HomeBase) IsReady() bool {
	return h != nil && h.Configured && h.Coordinate != nil
}
