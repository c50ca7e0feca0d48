package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/platform/obs"
	"petcare-route-service/internal/ports"
)

// OSRMProvider implements DirectionsProvider against an OSRM instance.
//
// It coordinates:
//   - Persistent leg caching (optional)
//   - External API calls with retry/backoff for transient failures
//
// The provider is safe for concurrent use. Callers own the fallback to a
// geographic estimate; this adapter only reports failure.
type OSRMProvider struct {
	session *http.Client
	baseURL string
	profile string
	cache   ports.LegCache
}

func NewOSRMProvider(baseURL string, cache ports.LegCache) *OSRMProvider {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}

	return &OSRMProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		profile: "driving",
		cache:   cache,
	}
}

type osrmRouteResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Route returns the driving leg between two coordinates, consulting the
// leg cache before issuing an external call.
func (o *OSRMProvider) Route(ctx context.Context, from, to domain.Coordinate) (_ ports.Leg, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	// Same point to same point is zero, within cache-key rounding tolerance.
	if roundCoord(from.Lat) == roundCoord(to.Lat) && roundCoord(from.Lon) == roundCoord(to.Lon) {
		return ports.Leg{}, nil
	}

	if o.cache != nil {
		cached, err := o.cache.Get(ctx, from, to)
		if err != nil {
			return ports.Leg{}, fmt.Errorf("osrm: leg cache read: %w", err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	leg, err := o.fetchLeg(ctx, from, to)
	if err != nil {
		return ports.Leg{}, err
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, from, to, leg); err != nil {
			log.Printf("osrm: leg cache write failed: %v", err)
		}
	}

	return leg, nil
}

func (o *OSRMProvider) fetchLeg(ctx context.Context, from, to domain.Coordinate) (ports.Leg, error) {
	endpoint := fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?overview=false",
		o.baseURL, o.profile, from.Lon, from.Lat, to.Lon, to.Lat)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return ports.Leg{}, fmt.Errorf("osrm: route request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.Leg{}, fmt.Errorf("osrm: decode route response: %w", err)
	}

	if decoded.Code != "Ok" {
		return ports.Leg{}, &ports.RouteError{From: from, To: to, Reason: fmt.Sprintf("OSRM code %q", decoded.Code)}
	}
	if len(decoded.Routes) == 0 {
		return ports.Leg{}, &ports.RouteError{From: from, To: to, Reason: "no routes returned"}
	}

	return ports.Leg{
		DistanceMeters:  decoded.Routes[0].Distance,
		DurationSeconds: decoded.Routes[0].Duration,
	}, nil
}

// roundCoord rounds to 5 decimal places (~1m) to match leg-cache key rounding.
func roundCoord(v float64) float64 {
	return float64(int(v*100000+0.5)) / 100000
}
