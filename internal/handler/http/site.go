package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
	"github.com/workforceone/fieldops-backend-go/internal/handler/http/response"
)

type SiteHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	CreateCheckpoint(w http.ResponseWriter, r *http.Request)
	ListCheckpoints(w http.ResponseWriter, r *http.Request)
	SetCheckpointActive(w http.ResponseWriter, r *http.Request)
}

type SiteHandlerImpl struct {
	siteService site.SiteService
}

func NewSiteHandler(siteService site.SiteService) SiteHandler {
	return &SiteHandlerImpl{siteService: siteService}
}

// Create implements SiteHandler.
func (h *SiteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req site.CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.siteService.CreateSite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Site created successfully", created)
}

// Get implements SiteHandler.
func (h *SiteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	st, err := h.siteService.GetSite(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, st)
}

// List implements SiteHandler.
func (h *SiteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.siteService.ListSites(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sites)
}

// Update implements SiteHandler.
func (h *SiteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req site.UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.siteService.UpdateSite(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site updated successfully", updated)
}

// Delete implements SiteHandler.
func (h *SiteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.siteService.DeleteSite(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site deleted successfully", nil)
}

// CreateCheckpoint implements SiteHandler.
func (h *SiteHandlerImpl) CreateCheckpoint(w http.ResponseWriter, r *http.Request) {
	var req site.CreateCheckpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.SiteID = chi.URLParam(r, "id")

	created, err := h.siteService.CreateCheckpoint(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checkpoint created successfully", created)
}

// ListCheckpoints implements SiteHandler.
func (h *SiteHandlerImpl) ListCheckpoints(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "id")

	checkpoints, err := h.siteService.ListCheckpoints(r.Context(), siteID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, checkpoints)
}

// SetCheckpointActive implements SiteHandler.
func (h *SiteHandlerImpl) SetCheckpointActive(w http.ResponseWriter, r *http.Request) {
	checkpointID := chi.URLParam(r, "checkpointID")

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		response.BadRequest(w, "is_active is required", nil)
		return
	}

	if err := h.siteService.SetCheckpointActive(r.Context(), checkpointID, *req.IsActive); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checkpoint updated successfully", nil)
}
