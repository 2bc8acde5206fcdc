package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/patrol"
	"github.com/workforceone/fieldops-backend-go/internal/handler/http/response"
)

type PatrolHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	RecordScan(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type PatrolHandlerImpl struct {
	patrolService patrol.PatrolService
}

func NewPatrolHandler(patrolService patrol.PatrolService) PatrolHandler {
	return &PatrolHandlerImpl{patrolService: patrolService}
}

// Start implements PatrolHandler.
func (h *PatrolHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	var req patrol.StartPatrolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	started, err := h.patrolService.StartPatrol(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Patrol started successfully", started)
}

// RecordScan implements PatrolHandler.
func (h *PatrolHandlerImpl) RecordScan(w http.ResponseWriter, r *http.Request) {
	var req patrol.RecordScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PatrolID = chi.URLParam(r, "id")

	logEntry, err := h.patrolService.RecordScan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Scan recorded successfully", logEntry)
}

// End implements PatrolHandler.
func (h *PatrolHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	patrolID := chi.URLParam(r, "id")

	var req patrol.EndPatrolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	ended, err := h.patrolService.EndPatrol(r.Context(), patrolID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Patrol ended successfully", ended)
}

// Get implements PatrolHandler.
func (h *PatrolHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	patrolID := chi.URLParam(r, "id")

	detail, err := h.patrolService.GetPatrol(r.Context(), patrolID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// List implements PatrolHandler.
func (h *PatrolHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := patrol.PatrolFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("site_id"); v != "" {
		filter.SiteID = &v
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	patrols, total, err := h.patrolService.ListPatrols(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, patrols, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, filter.Limit),
	})
}

// queryInt gets an int query parameter with a default value
func queryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
