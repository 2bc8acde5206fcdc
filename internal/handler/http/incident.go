package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/incident"
	"github.com/workforceone/fieldops-backend-go/internal/handler/http/response"
)

type IncidentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type IncidentHandlerImpl struct {
	incidentService incident.IncidentService
}

func NewIncidentHandler(incidentService incident.IncidentService) IncidentHandler {
	return &IncidentHandlerImpl{incidentService: incidentService}
}

// Create implements IncidentHandler.
func (h *IncidentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req incident.CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.incidentService.CreateIncident(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Incident reported successfully", created)
}

// Get implements IncidentHandler.
func (h *IncidentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	inc, err := h.incidentService.GetIncident(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, inc)
}

// List implements IncidentHandler.
func (h *IncidentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := incident.IncidentFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("priority"); v != "" {
		filter.Priority = &v
	}
	if v := r.URL.Query().Get("patrol_id"); v != "" {
		filter.PatrolID = &v
	}

	incidents, total, err := h.incidentService.ListIncidents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, incidents, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, filter.Limit),
	})
}

// UpdateStatus implements IncidentHandler.
func (h *IncidentHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req incident.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.incidentService.UpdateStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Incident status updated", updated)
}
