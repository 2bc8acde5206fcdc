package http

import (
	"encoding/json"
	"net/http"

	"github.com/workforceone/fieldops-backend-go/internal/domain/geofence"
	"github.com/workforceone/fieldops-backend-go/internal/handler/http/response"
)

type GeofenceHandler interface {
	PositionSample(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type GeofenceHandlerImpl struct {
	geofenceService geofence.Service
}

func NewGeofenceHandler(geofenceService geofence.Service) GeofenceHandler {
	return &GeofenceHandlerImpl{geofenceService: geofenceService}
}

// PositionSample implements GeofenceHandler.
func (h *GeofenceHandlerImpl) PositionSample(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req geofence.PositionSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.geofenceService.ProcessSample(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Status implements GeofenceHandler.
func (h *GeofenceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	response.Success(w, h.geofenceService.Status(userID))
}
