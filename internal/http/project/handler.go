package project

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/project"
)

type Handler struct {
	svc *project.Service
}

func NewHandler(svc *project.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/units", h.addUnit)
	r.Get("/{id}/units", h.listUnits)
}

type projectResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Location  string     `json:"location,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type unitResponse struct {
	ID        uuid.UUID          `json:"id"`
	ProjectID uuid.UUID          `json:"project_id"`
	Block     string             `json:"block,omitempty"`
	Floor     int                `json:"floor"`
	Number    string             `json:"number"`
	AreaM2    float64            `json:"area_m2"`
	Price     int64              `json:"price"`
	Status    project.UnitStatus `json:"status"`
}

func toResponse(p *project.Project) projectResponse {
	return projectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Location:  p.Location,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toUnitResponse(u *project.Unit) unitResponse {
	return unitResponse{
		ID:        u.ID,
		ProjectID: u.ProjectID,
		Block:     u.Block,
		Floor:     u.Floor,
		Number:    u.Number,
		AreaM2:    u.AreaM2,
		Price:     u.Price,
		Status:    u.Status,
	}
}

type createProjectRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), project.CreateParams{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateProjectRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}

	if req.Location != nil {
		p.Location = *req.Location
	}

	if err := h.svc.Update(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createUnitRequest struct {
	Block  string  `json:"block"`
	Floor  int     `json:"floor"`
	Number string  `json:"number"`
	AreaM2 float64 `json:"area_m2"`
	Price  int64   `json:"price"`
}

func (h *Handler) addUnit(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req createUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Number == "" {
		http.Error(w, "number is required", http.StatusBadRequest)
		return
	}

	u, err := h.svc.AddUnit(r.Context(), project.CreateUnitParams{
		ProjectID: projectID,
		Block:     req.Block,
		Floor:     req.Floor,
		Number:    req.Number,
		AreaM2:    req.AreaM2,
		Price:     req.Price,
	})
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toUnitResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listUnits(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	units, err := h.svc.ListUnits(r.Context(), projectID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]unitResponse, 0, len(units))
	for _, u := range units {
		resp = append(resp, toUnitResponse(u))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
