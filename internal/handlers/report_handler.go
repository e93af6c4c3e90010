package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/services"
	"github.com/surajbi2/secureIn-backend/internal/timeutil"
	"github.com/surajbi2/secureIn-backend/pkg/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.Dashboard(r.Context())
	if err != nil {
		log.Printf("[Report] Dashboard failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	utils.JSON(w, http.StatusOK, report)
}

// visitorLogRange parses ?from=YYYY-MM-DD&to=YYYY-MM-DD as IST dates.
// Defaults to the last 30 days; the 'to' date is inclusive.
func visitorLogRange(r *http.Request) (time.Time, time.Time, error) {
	now := timeutil.Now()
	from := timeutil.StartOfDay(now).AddDate(0, 0, -30)
	to := timeutil.StartOfDay(now).AddDate(0, 0, 1)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := timeutil.ParseInIST(timeutil.DateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := timeutil.ParseInIST(timeutil.DateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.AddDate(0, 0, 1)
	}

	return from, to, nil
}

func (h *ReportHandler) VisitorLog(w http.ResponseWriter, r *http.Request) {
	from, to, err := visitorLogRange(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Dates must be YYYY-MM-DD")
		return
	}

	passes, err := h.reportService.VisitorLog(r.Context(), from, to)
	if err != nil {
		log.Printf("[Report] Visitor log failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to build visitor log")
		return
	}

	if passes == nil {
		passes = []*models.EntryPass{}
	}
	utils.JSON(w, http.StatusOK, passes)
}

func (h *ReportHandler) VisitorLogPDF(w http.ResponseWriter, r *http.Request) {
	from, to, err := visitorLogRange(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Dates must be YYYY-MM-DD")
		return
	}

	pdf, err := h.reportService.VisitorLogPDF(r.Context(), from, to)
	if err != nil {
		log.Printf("[Report] Visitor log PDF failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="visitor-log.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
