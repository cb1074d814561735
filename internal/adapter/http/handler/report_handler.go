package handler

import (
	"context"
	"net/http"

	"github.com/dnoor/kasir/internal/adapter/http/dto"
	"github.com/dnoor/kasir/internal/usecase"
)

// ReportService defines the aggregation behavior needed by
// ReportHandler.
type ReportService interface {
	GetRangeReport(ctx context.Context, from, to string) (*usecase.RangeReport, error)
	GetDaySummaries(ctx context.Context, from, to string) ([]usecase.DaySummary, error)
}

// ExportService defines the export behavior needed by ReportHandler.
type ExportService interface {
	ExportAll(ctx context.Context) (*usecase.ExportBundle, error)
	ExportRangeXLSX(ctx context.Context, from, to string) ([]byte, error)
}

// ReportHandler handles reporting and export HTTP requests.
type ReportHandler struct {
	reportUC ReportService
	exportUC ExportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService, exportUC ExportService) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		exportUC: exportUC,
	}
}

// GetReport aggregates transactions over a date range.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	report, err := h.reportUC.GetRangeReport(r.Context(), from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RangeReportFromUseCase(report))
}

// GetDaySummaries summarizes every persisted day in a range.
func (h *ReportHandler) GetDaySummaries(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	summaries, err := h.reportUC.GetDaySummaries(r.Context(), from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize days", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(summaries))
}

// ExportJSON dumps all persisted data as one versioned bundle.
func (h *ReportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.exportUC.ExportAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export data", err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="kasir-export.json"`)
	writeJSON(w, http.StatusOK, bundle)
}

// ExportXLSX renders a date range as a spreadsheet.
func (h *ReportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	workbook, err := h.exportUC.ExportRangeXLSX(r.Context(), from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to export spreadsheet", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="kasir-report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(workbook)
}
