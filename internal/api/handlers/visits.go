package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"petcare-route-service/internal/api/dto"
	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/ports"
)

type VisitHandler struct {
	Repo ports.VisitRepository
}

// List returns every stored visit ordered by window start.
func (h *VisitHandler) List(w http.ResponseWriter, r *http.Request) {
	visits, err := h.Repo.ListVisits(r.Context())
	if err != nil {
		log.Printf("list visits failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVisitResponse{Visits: make([]dto.VisitResponse, 0, len(visits))}
	for _, v := range visits {
		res.Visits = append(res.Visits, VisitToResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Create stores a batch of visits. IDs are generated server-side when
// absent; coordinates must already be resolved by the caller (geocoding
// happens upstream of this service).
func (h *VisitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var reqs []dto.VisitRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&reqs); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON array")
		return
	}

	visits := make([]domain.Visit, 0, len(reqs))
	for _, req := range reqs {
		v, errMsg := visitFromRequest(req)
		if errMsg != "" {
			writeError(w, r, http.StatusBadRequest, errMsg)
			return
		}
		visits = append(visits, v)
	}

	if err := h.Repo.SaveVisits(r.Context(), visits); err != nil {
		log.Printf("save visits failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVisitResponse{Visits: make([]dto.VisitResponse, 0, len(visits))}
	for _, v := range visits {
		res.Visits = append(res.Visits, VisitToResponse(v))
	}

	writeJSON(w, r, http.StatusCreated, res)
}

func visitFromRequest(req dto.VisitRequest) (domain.Visit, string) {
	id := uuid.New()
	if strings.TrimSpace(req.ID) != "" {
		parsed, err := uuid.Parse(req.ID)
		if err != nil {
			return domain.Visit{}, "id must be a valid uuid"
		}
		id = parsed
	}

	if strings.TrimSpace(req.PetName) == "" {
		return domain.Visit{}, "pet_name is required"
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return domain.Visit{}, "start_time and end_time are required"
	}
	if req.DurationMinutes <= 0 {
		return domain.Visit{}, "duration_minutes must be positive"
	}

	serviceType := domain.ServiceType(req.ServiceType)
	switch serviceType {
	case domain.ServiceWalk, domain.ServiceDropIn, domain.ServiceOvernight,
		domain.ServiceGrooming, domain.ServiceTransport:
	default:
		return domain.Visit{}, "service_type must be one of walk, drop_in, overnight, grooming, transport"
	}

	return domain.Visit{
		ID:              id,
		ClientName:      req.ClientName,
		PetName:         req.PetName,
		Address:         req.Address,
		Coordinate:      domain.Coordinate{Lat: req.Lat, Lon: req.Lon},
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		DurationMinutes: req.DurationMinutes,
		ServiceType:     serviceType,
		Notes:           req.Notes,
	}, ""
}

// VisitToResponse maps a domain visit onto its response DTO.
func VisitToResponse(v domain.Visit) dto.VisitResponse {
	return dto.VisitResponse{
		ID:              v.ID.String(),
		ClientName:      v.ClientName,
		PetName:         v.PetName,
		Address:         v.Address,
		Lat:             v.Coordinate.Lat,
		Lon:             v.Coordinate.Lon,
		StartTime:       v.StartTime,
		EndTime:         v.EndTime,
		DurationMinutes: v.DurationMinutes,
		ServiceType:     string(v.ServiceType),
		Notes:           v.Notes,
		Completed:       v.Completed,
	}
}
