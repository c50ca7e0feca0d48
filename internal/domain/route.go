package domain

import "time"

// RouteOrigin tags which path produced a route, for observability only.
type RouteOrigin string

const (
	OriginAI       RouteOrigin = "ai"
	OriginFallback RouteOrigin = "fallback"
)

// Represents the optimizer's output for one optimization pass.
// The ordering of Visits IS the route plan; there is no separate index
// array. A Route is immutable planning data and is always a fresh value,
// never mutated incrementally.
//
// TotalTimeSeconds on the AI path covers travel plus service time per the
// external model's contract; on the fallback path it covers travel only.
// The two are not numerically comparable.
type Route struct {
	Visits             []Visit
	TotalDistanceMiles float64
	TotalTimeSeconds   float64
	Efficiency         float64 // in [0,1]
	CreatedAt          time.Time
	Reasoning          string
	Feasible           bool
	Origin             RouteOrigin
}

// A group of visits sharing a byte-identical time window. Produced by
// overlap detection as optimizer input annotation; never persisted.
type OverlappingTimeWindow struct {
	StartTime time.Time
	EndTime   time.Time
	Visits    []Visit
}
