package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"petcare-route-service/internal/api/dto"
	"petcare-route-service/internal/domain"
)

type fakeVisitRepo struct {
	visits []domain.Visit
	err    error
}

func (f *fakeVisitRepo) ListVisits(ctx context.Context) ([]domain.Visit, error) {
	return f.visits, f.err
}

func (f *fakeVisitRepo) SaveVisits(ctx context.Context, visits []domain.Visit) error {
	f.visits = append(f.visits, visits...)
	return f.err
}

func storedVisit(pet, client string, hour int) domain.Visit {
	start := time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
	return domain.Visit{
		ID:              uuid.New(),
		ClientName:      client,
		PetName:         pet,
		Address:         "101 N Central Ave, Phoenix, AZ",
		Coordinate:      domain.Coordinate{Lat: 33.4484, Lon: -112.0740},
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 30,
		ServiceType:     domain.ServiceWalk,
	}
}

func TestOptimizeHandlerFallbackRoute(t *testing.T) {
	repo := &fakeVisitRepo{visits: []domain.Visit{
		storedVisit("Milo", "Pat", 14),
		storedVisit("Rex", "Dana", 9),
	}}
	h := &RouteHandler{Repo: repo}

	req := httptest.NewRequest(http.MethodPost, "/routes/optimize", strings.NewReader(`{"use_ai":false}`))
	rec := httptest.NewRecorder()

	h.Optimize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.RouteResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(res.Visits) != 2 {
		t.Fatalf("got %d visits, want 2", len(res.Visits))
	}
	if res.Visits[0].PetName != "Rex" {
		t.Errorf("first visit = %q, want Rex (time order)", res.Visits[0].PetName)
	}
	if res.Origin != "fallback" {
		t.Errorf("origin = %q, want fallback", res.Origin)
	}
	if !res.Feasible {
		t.Error("fallback route must be feasible")
	}
}

func TestOptimizeHandlerEmptyBody(t *testing.T) {
	repo := &fakeVisitRepo{visits: []domain.Visit{storedVisit("Rex", "Dana", 9)}}
	h := &RouteHandler{Repo: repo}

	// No body at all is a valid fallback-only request.
	req := httptest.NewRequest(http.MethodPost, "/routes/optimize", nil)
	rec := httptest.NewRecorder()

	h.Optimize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestOptimizeHandlerNoVisits(t *testing.T) {
	h := &RouteHandler{Repo: &fakeVisitRepo{}}

	req := httptest.NewRequest(http.MethodPost, "/routes/optimize", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Optimize(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var res map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res["error"] == "" {
		t.Error("error body missing")
	}
}

func TestOptimizeHandlerRepoFailure(t *testing.T) {
	h := &RouteHandler{Repo: &fakeVisitRepo{err: errors.New("disk on fire")}}

	req := httptest.NewRequest(http.MethodPost, "/routes/optimize", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Optimize(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestCreateVisitsValidation(t *testing.T) {
	h := &VisitHandler{Repo: &fakeVisitRepo{}}

	body := `[{"pet_name":"","client_name":"Dana","lat":33.4,"lon":-112.0,` +
		`"start_time":"2026-03-02T09:00:00Z","end_time":"2026-03-02T10:00:00Z",` +
		`"duration_minutes":30,"service_type":"walk"}]`

	req := httptest.NewRequest(http.MethodPost, "/visits", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateVisitsGeneratesIDs(t *testing.T) {
	repo := &fakeVisitRepo{}
	h := &VisitHandler{Repo: repo}

	body := `[{"pet_name":"Rex","client_name":"Dana","address":"101 N Central Ave","lat":33.4,"lon":-112.0,` +
		`"start_time":"2026-03-02T09:00:00Z","end_time":"2026-03-02T10:00:00Z",` +
		`"duration_minutes":30,"service_type":"walk","notes":""}]`

	req := httptest.NewRequest(http.MethodPost, "/visits", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if len(repo.visits) != 1 {
		t.Fatalf("stored %d visits, want 1", len(repo.visits))
	}
	if repo.visits[0].ID == uuid.Nil {
		t.Error("server must generate an id when the request omits one")
	}
}
