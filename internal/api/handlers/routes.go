package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"petcare-route-service/internal/api/dto"
	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/ports"
	"petcare-route-service/internal/services"
)

type RouteHandler struct {
	Repo       ports.VisitRepository
	Model      ports.ModelClient
	Directions ports.DirectionsProvider
}

// Optimize orders the stored visits into a daily route.
// The model path is opt-in; with use_ai false (or no model configured)
// only the deterministic time-window ordering runs.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	visits, err := h.Repo.ListVisits(r.Context())
	if err != nil {
		log.Printf("list visits failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	var model ports.ModelClient
	if req.UseAI {
		model = h.Model
	}
	optimizer := services.NewOptimizer(model, h.Directions)

	route, err := optimizer.Optimize(r.Context(), visits, homeBaseFromRequest(req.HomeBase))
	if err != nil {
		if errors.Is(err, services.ErrNoVisits) {
			writeError(w, r, http.StatusUnprocessableEntity, "no visits to schedule")
			return
		}
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, RouteToResponse(route))
}

func homeBaseFromRequest(req *dto.HomeBaseRequest) *domain.HomeBase {
	if req == nil {
		return nil
	}

	hb := &domain.HomeBase{
		Name:               req.Name,
		Address:            req.Address,
		UseCurrentLocation: req.UseCurrentLocation,
		Configured:         true,
	}
	if req.Lat != nil && req.Lon != nil {
		hb.Coordinate = &domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	}
	return hb
}

// RouteToResponse maps a domain route onto its response DTO.
func RouteToResponse(route domain.Route) dto.RouteResponse {
	visits := make([]dto.VisitResponse, 0, len(route.Visits))
	for _, v := range route.Visits {
		visits = append(visits, VisitToResponse(v))
	}

	return dto.RouteResponse{
		Visits:             visits,
		TotalDistanceMiles: route.TotalDistanceMiles,
		TotalTimeSeconds:   route.TotalTimeSeconds,
		Efficiency:         route.Efficiency,
		CreatedAt:          route.CreatedAt,
		Reasoning:          route.Reasoning,
		Feasible:           route.Feasible,
		Origin:             string(route.Origin),
	}
}
