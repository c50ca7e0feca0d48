package services

import (
	"context"
	"errors"
	"log"
	"slices"
	"time"

	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/platform/obs"
	"petcare-route-service/internal/ports"
)

// ErrNoVisits is the only optimization failure that propagates to the
// caller; every other condition degrades to a best-effort Route.
var ErrNoVisits = errors.New("optimize: no visits to schedule")

const singleVisitReasoning = "Only one visit scheduled; no routing needed."

// ProgressFunc receives pipeline progress as a monotonically increasing
// fraction in [0,1]. Purely for UI feedback; it carries no correctness
// contract and may be nil.
type ProgressFunc func(stage string, fraction float64)

// Optimizer is the route assembly pipeline: overlap annotation, prompt
// rendering, one external model call, reply interpretation, and the
// deterministic fallback when the model path is unavailable or unusable.
//
// Dependencies are injected at construction. A nil Model runs the
// fallback path unconditionally (the AI-free configuration of the same
// subsystem). The Optimizer holds no mutable state; each invocation
// works on its own copy of the input and produces a fresh Route.
type Optimizer struct {
	Model      ports.ModelClient
	Directions ports.DirectionsProvider
	Progress   ProgressFunc
}

func NewOptimizer(model ports.ModelClient, directions ports.DirectionsProvider) *Optimizer {
	return &Optimizer{Model: model, Directions: directions}
}

// Optimize produces an ordered Route for the given visits.
//
// The model call and the fallback path are mutually exclusive for a
// single invocation. Any model failure (configuration, transport,
// response shape) transfers control to the fallback; it is never
// surfaced to the caller. A cancelled context aborts the invocation
// without returning a partial Route.
func (o *Optimizer) Optimize(ctx context.Context, visits []domain.Visit, homeBase *domain.HomeBase) (_ domain.Route, err error) {
	defer obs.Time(ctx, "optimizer.Optimize")(&err)

	if len(visits) == 0 {
		return domain.Route{}, ErrNoVisits
	}

	// The optimizer treats visits as read-only; work on an own copy so a
	// caller mutating its slice cannot race an in-flight optimization.
	visits = slices.Clone(visits)

	if len(visits) == 1 {
		o.progress("done", 1.0)
		return domain.Route{
			Visits:     visits,
			Efficiency: 1.0,
			CreatedAt:  time.Now(),
			Reasoning:  singleVisitReasoning,
			Feasible:   true,
			// Origin has no third value; the short-circuit reports as
			// fallback and the reasoning text tells the cases apart.
			Origin: domain.OriginFallback,
		}, nil
	}

	if o.Model == nil {
		return o.fallback(ctx, visits, 0)
	}

	o.progress("annotate", 0.15)
	overlaps := DetectOverlappingWindows(visits)

	o.progress("prompt", 0.3)
	prompt := BuildPrompt(visits, homeBase, overlaps)

	o.progress("request", 0.6)
	raw, genErr := o.Model.GenerateText(ctx, prompt)
	if genErr != nil {
		if ctx.Err() != nil {
			return domain.Route{}, ctx.Err()
		}
		log.Printf("optimizer: model path failed, using fallback: %v", genErr)
		return o.fallback(ctx, visits, 0.6)
	}

	o.progress("parse", 0.8)
	in := InterpretResponse(raw, visits)

	if err := ctx.Err(); err != nil {
		return domain.Route{}, err
	}

	o.progress("done", 1.0)
	return domain.Route{
		Visits:             in.Visits,
		TotalDistanceMiles: in.TotalDistanceMiles,
		TotalTimeSeconds:   in.TotalTimeSeconds,
		Efficiency:         in.Efficiency,
		CreatedAt:          time.Now(),
		Reasoning:          in.Reasoning,
		Feasible:           in.Feasible,
		Origin:             domain.OriginAI,
	}, nil
}

// fallback runs the deterministic ordering. from is the fraction the
// caller last reported, so progress keeps increasing when the model
// path hands over partway through.
func (o *Optimizer) fallback(ctx context.Context, visits []domain.Visit, from float64) (domain.Route, error) {
	o.progress("order", from+(1.0-from)/2)

	route, err := FallbackRoute(ctx, visits, o.Directions)
	if err != nil {
		return domain.Route{}, err
	}

	o.progress("done", 1.0)
	return route, nil
}

func (o *Optimizer) progress(stage string, fraction float64) {
	if o.Progress != nil {
		o.Progress(stage, fraction)
	}
}
