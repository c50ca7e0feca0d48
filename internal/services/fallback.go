package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/ports"
)

// Efficiency is scored against a notional good day of driving:
// baselineDistanceMiles per visit-to-visit leg.
const baselineDistanceMiles = 10.0

// Fixed rationale identifying a time-based route so callers can label it
// distinctly from model-derived routes.
const FallbackReasoning = "Route ordered by appointment start time; visits without scheduling slack are placed ahead of flexible ones."

// Bounded concurrency for pairwise directions lookups.
const maxLegLookups = 5

// OrderByTimeWindow returns the deterministic fallback ordering: ascending
// window start, ties broken by flexibility so a visit whose window exactly
// equals its duration sorts before a flexible one with the same start.
// The sort is stable, making this a total order over the input.
func OrderByTimeWindow(visits []domain.Visit) []domain.Visit {
	ordered := slices.Clone(visits)
	slices.SortStableFunc(ordered, func(a, b domain.Visit) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		if !a.IsFlexible() && b.IsFlexible() {
			return -1
		}
		if a.IsFlexible() && !b.IsFlexible() {
			return 1
		}
		return 0
	})
	return ordered
}

// FallbackRoute computes a complete Route without the external model:
// time-window ordering plus pairwise metrics from the directions provider,
// substituting the haversine estimate for any leg whose lookup fails.
// A single failed lookup only degrades that one leg's contribution.
func FallbackRoute(ctx context.Context, visits []domain.Visit, provider ports.DirectionsProvider) (domain.Route, error) {
	ordered := OrderByTimeWindow(visits)

	route := domain.Route{
		Visits:     ordered,
		Efficiency: 1.0,
		CreatedAt:  time.Now(),
		Reasoning:  FallbackReasoning,
		Feasible:   true,
		Origin:     domain.OriginFallback,
	}

	// A single-visit route involves no driving by definition.
	if len(ordered) < 2 {
		return route, nil
	}

	miles, seconds, err := sumLegs(ctx, ordered, provider)
	if err != nil {
		return domain.Route{}, err
	}

	route.TotalDistanceMiles = miles
	route.TotalTimeSeconds = seconds

	avgPerVisit := miles / float64(len(ordered)-1)
	if avgPerVisit > 0 {
		route.Efficiency = clamp01(baselineDistanceMiles / avgPerVisit)
	}

	return route, nil
}

type legMetrics struct {
	miles   float64
	seconds float64
}

// sumLegs walks the ordered visits pairwise and totals distance and
// travel time. Leg lookups are independent and issued concurrently under
// a small bound; results are reassembled by leg index, though the totals
// are order-independent sums. The only error returned is cancellation.
func sumLegs(ctx context.Context, ordered []domain.Visit, provider ports.DirectionsProvider) (float64, float64, error) {
	legs := make([]legMetrics, len(ordered)-1)

	sem := make(chan struct{}, maxLegLookups)
	var wg sync.WaitGroup

	for i := 0; i < len(ordered)-1; i++ {
		wg.Add(1)
		go func(i int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			legs[i] = lookupLeg(ctx, ordered[i].Coordinate, ordered[i+1].Coordinate, provider)
		}(i)
	}

	wg.Wait()

	// A cancelled invocation must never yield a partial route.
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	var miles, seconds float64
	for _, leg := range legs {
		miles += leg.miles
		seconds += leg.seconds
	}
	return miles, seconds, nil
}

// lookupLeg fetches one leg from the directions provider, substituting the
// great-circle estimate when the provider is absent or the lookup fails.
func lookupLeg(ctx context.Context, from, to domain.Coordinate, provider ports.DirectionsProvider) legMetrics {
	if provider != nil {
		if leg, err := provider.Route(ctx, from, to); err == nil {
			return legMetrics{miles: MetersToMiles(leg.DistanceMeters), seconds: leg.DurationSeconds}
		}
	}

	miles := HaversineMiles(from, to)
	return legMetrics{miles: miles, seconds: EstimateTravelSeconds(miles)}
}
