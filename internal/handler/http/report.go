package http

import (
	"net/http"

	"github.com/workforceone/fieldops-backend-go/internal/domain/report"
	"github.com/workforceone/fieldops-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	Anomalies(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// AttendanceSummary implements ReportHandler.
func (h *ReportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	windowDays := queryInt(r, "window_days", 0)

	summary, err := h.reportService.GetAttendanceSummary(r.Context(), windowDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Anomalies implements ReportHandler.
func (h *ReportHandlerImpl) Anomalies(w http.ResponseWriter, r *http.Request) {
	windowDays := queryInt(r, "window_days", 0)

	anomalies, err := h.reportService.GetAnomalies(r.Context(), windowDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, anomalies)
}
