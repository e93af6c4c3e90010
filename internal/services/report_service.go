package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/surajbi2/secureIn-backend/internal/cache"
	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/repositories"
	"github.com/surajbi2/secureIn-backend/internal/timeutil"
)

type ReportService struct {
	passRepo *repositories.EntryPassRepository
}

func NewReportService(passRepo *repositories.EntryPassRepository) *ReportService {
	return &ReportService{passRepo: passRepo}
}

// DashboardReport is the aggregate view for the security office dashboard.
type DashboardReport struct {
	Counts         map[string]int      `json:"counts"`
	RecentVisitors []*models.EntryPass `json:"recent_visitors"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// Dashboard builds the security dashboard, served from Redis for up to a
// minute when the cache is up.
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardReport, error) {
	if data, ok := cache.GetCachedDashboard(ctx); ok {
		report := &DashboardReport{}
		if err := json.Unmarshal(data, report); err == nil {
			return report, nil
		}
	}

	counts, err := s.passRepo.DashboardCounts(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.passRepo.RecentVisitors(ctx, 10)
	if err != nil {
		return nil, err
	}

	report := &DashboardReport{
		Counts:         counts,
		RecentVisitors: recent,
		GeneratedAt:    timeutil.Now(),
	}

	if data, err := json.Marshal(report); err == nil {
		cache.CacheDashboard(ctx, data)
	} else {
		log.Printf("[Report] Failed to marshal dashboard for cache: %v", err)
	}

	return report, nil
}

// VisitorLog returns the live passes created within the given IST date range.
func (s *ReportService) VisitorLog(ctx context.Context, from, to time.Time) ([]*models.EntryPass, error) {
	return s.passRepo.ListByDateRange(ctx, from, to)
}

// VisitorLogPDF renders the visitor log as a printable PDF. Landscape so the
// entry/exit columns fit.
func (s *ReportService) VisitorLogPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	passes, err := s.passRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "SecureIN - Visitor Log", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Period: %s to %s | Generated: %s",
		timeutil.ToIST(from).Format("02-Jan-2006"),
		timeutil.ToIST(to).Format("02-Jan-2006"),
		timeutil.Now().Format("02-Jan-2006 03:04 PM"),
	), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(22, 7, "Pass ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Visitor", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Phone", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Event / Purpose", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Entry", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Exit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Status", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, p := range passes {
		name := p.VisitorName
		if len(name) > 32 {
			name = name[:29] + "..."
		}

		phone := ""
		if p.VisitorPhone != nil {
			phone = *p.VisitorPhone
		}

		context := ""
		if p.EventName != nil {
			context = *p.EventName
		} else if p.Purpose != nil {
			context = *p.Purpose
		}
		if len(context) > 30 {
			context = context[:27] + "..."
		}

		entryTime := "-"
		if p.EntryTime != nil {
			entryTime = timeutil.ToIST(*p.EntryTime).Format("02-Jan 03:04 PM")
		}
		exitTime := "-"
		if p.ExitTime != nil {
			exitTime = timeutil.ToIST(*p.ExitTime).Format("02-Jan 03:04 PM")
		}

		pdf.CellFormat(22, 6, p.PassID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, phone, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, context, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, entryTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, exitTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, p.Status, "1", 1, "C", false, 0, "")
	}

	if len(passes) == 0 {
		pdf.CellFormat(277, 8, "No visitors in this period", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
