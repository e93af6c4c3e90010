package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/surajbi2/secureIn-backend/internal/config"
	"github.com/surajbi2/secureIn-backend/internal/metrics"
	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/qr"
	"github.com/surajbi2/secureIn-backend/internal/repositories"
	"github.com/surajbi2/secureIn-backend/internal/storage"
	"github.com/surajbi2/secureIn-backend/internal/timeutil"
)

var (
	ErrVisitorNameRequired = errors.New("visitor name is required")
	ErrValidityRequired    = errors.New("valid_from and valid_until are required")
	ErrInvalidValidity     = errors.New("valid_until must be after valid_from")
	ErrBadDateFormat       = errors.New("dates must be YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
	ErrPassIDExhausted     = errors.New("could not allocate a unique pass id")
)

// ScanNotifier receives live scan events, e.g. for the monitoring dashboard.
type ScanNotifier interface {
	NotifyScan(action string, pass *models.EntryPass)
}

type PassService struct {
	passRepo  *repositories.EntryPassRepository
	archiver  *storage.R2Archiver
	notifier  ScanNotifier
	qrBaseURL string
}

func NewPassService(passRepo *repositories.EntryPassRepository, archiver *storage.R2Archiver, cfg *config.Config) *PassService {
	return &PassService{
		passRepo:  passRepo,
		archiver:  archiver,
		qrBaseURL: strings.TrimRight(cfg.QR.BaseURL, "/"),
	}
}

// SetNotifier attaches a live scan feed. Optional.
func (s *PassService) SetNotifier(n ScanNotifier) {
	s.notifier = n
}

// generatePassID produces a 6-character uppercase short code.
func generatePassID() string {
	return strings.ToUpper(uuid.NewString()[:6])
}

// parseValidity accepts a datetime or a bare date, interpreted as IST wall
// time. A bare date expands to end of day when endOfDay is set, so a pass
// valid "until 2026-09-01" covers the whole of that day.
func parseValidity(value string, endOfDay bool) (time.Time, error) {
	if t, err := timeutil.ParseInIST(timeutil.DateTimeLayout, value); err == nil {
		return t, nil
	}
	t, err := timeutil.ParseInIST(timeutil.DateLayout, value)
	if err != nil {
		return time.Time{}, ErrBadDateFormat
	}
	if endOfDay {
		return t.Add(24*time.Hour - time.Second), nil
	}
	return t, nil
}

// IssuePass creates a new pass with a generated short code and embedded QR.
// Short-code collisions against live passes are rare (16^6 space) but
// possible, so creation retries with a fresh code a few times.
func (s *PassService) IssuePass(ctx context.Context, req *models.CreatePassRequest, createdBy int) (*models.EntryPass, error) {
	if strings.TrimSpace(req.VisitorName) == "" {
		return nil, ErrVisitorNameRequired
	}
	if req.ValidFrom == "" || req.ValidUntil == "" {
		return nil, ErrValidityRequired
	}

	validFrom, err := parseValidity(req.ValidFrom, false)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseValidity(req.ValidUntil, true)
	if err != nil {
		return nil, err
	}
	if !validUntil.After(validFrom) {
		return nil, ErrInvalidValidity
	}

	optional := func(v string) *string {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return &v
	}

	for attempt := 0; attempt < 3; attempt++ {
		passID := generatePassID()
		verifyURL := fmt.Sprintf("%s/qr-verify-pass/%s", s.qrBaseURL, passID)

		qrDataURL, qrPNG, err := qr.Generate(verifyURL)
		if err != nil {
			return nil, err
		}

		pass := &models.EntryPass{
			PassID:            passID,
			VisitorName:       strings.TrimSpace(req.VisitorName),
			VisitorPhone:      optional(req.VisitorPhone),
			VisitType:         optional(req.VisitType),
			IDType:            optional(req.IDType),
			IDNumber:          optional(req.IDNumber),
			EventID:           req.EventID,
			StudentName:       optional(req.StudentName),
			RelationToStudent: optional(req.RelationToStudent),
			Department:        optional(req.Department),
			Purpose:           optional(req.Purpose),
			ValidFrom:         validFrom,
			ValidUntil:        validUntil,
			QRCode:            qrDataURL,
			CreatedBy:         &createdBy,
		}

		err = s.passRepo.Create(ctx, pass)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				log.Printf("[Pass] Short code collision on %s, retrying", passID)
				continue
			}
			return nil, err
		}

		metrics.PassesIssuedTotal.Inc()
		go s.archiver.ArchiveQR(context.Background(), passID, qrPNG)
		return pass, nil
	}

	return nil, ErrPassIDExhausted
}

// VerifyPass is the public validity check behind the QR URL. It never mutates
// entry state, but an overdue active pass gets its expiry written back.
func (s *PassService) VerifyPass(ctx context.Context, passID string) (*models.VerifyResponse, error) {
	pass, err := s.passRepo.GetByPassID(ctx, passID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPassNotFound
		}
		return nil, err
	}

	verdict := EvaluatePass(pass, timeutil.Now())
	if verdict.PersistExpiry {
		if marked, err := s.passRepo.MarkExpired(ctx, pass.ID); err != nil {
			log.Printf("[Pass] Failed to persist expiry for %s: %v", pass.PassID, err)
		} else if marked {
			pass.Status = models.PassStatusExpired
			metrics.PassesExpiredTotal.Inc()
		}
	}

	return &models.VerifyResponse{
		Pass:              pass,
		Status:            verdict.Status,
		ValidationMessage: verdict.Message,
	}, nil
}

// Scan performs the combined entry/exit gate scan. The first scan of a valid
// pass records entry, the second records exit and spends the pass; anything
// after that fails. The state transition itself is a conditional update, so
// two simultaneous scans of the same pass cannot both succeed.
func (s *PassService) Scan(ctx context.Context, passID string) (*models.ScanResponse, error) {
	pass, err := s.passRepo.GetByPassID(ctx, passID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPassNotFound
		}
		return nil, err
	}

	now := timeutil.Now()
	if pass.Status == models.PassStatusActive && now.After(pass.ValidUntil) {
		if marked, err := s.passRepo.MarkExpired(ctx, pass.ID); err != nil {
			log.Printf("[Pass] Failed to persist expiry for %s: %v", pass.PassID, err)
		} else if marked {
			metrics.PassesExpiredTotal.Inc()
		}
		return nil, ErrPassExpired
	}

	action, err := NextScanAction(pass, now)
	if err != nil {
		return nil, err
	}

	var applied bool
	switch action {
	case models.ScanActionEntry:
		applied, err = s.passRepo.RecordEntry(ctx, pass.ID)
	case models.ScanActionExit:
		applied, err = s.passRepo.RecordExit(ctx, pass.ID)
	}
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrScanConflict
	}

	updated, err := s.passRepo.GetByID(ctx, pass.ID)
	if err != nil {
		return nil, err
	}

	metrics.PassScansTotal.WithLabelValues(action).Inc()
	if s.notifier != nil {
		s.notifier.NotifyScan(action, updated)
	}

	return &models.ScanResponse{Action: action, Pass: updated}, nil
}

// ListActive sweeps overdue passes first so the listing never shows an
// 'active' pass whose window has lapsed.
func (s *PassService) ListActive(ctx context.Context) ([]*models.EntryPass, error) {
	swept, err := s.passRepo.ExpireSweep(ctx)
	if err != nil {
		return nil, err
	}
	if swept > 0 {
		log.Printf("[Pass] Expired %d overdue passes", swept)
		metrics.PassesExpiredTotal.Add(float64(swept))
	}

	return s.passRepo.ListActive(ctx)
}

// SoftDelete hides a pass from all reads. The row stays for audit.
func (s *PassService) SoftDelete(ctx context.Context, id int) error {
	ok, err := s.passRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPassNotFound
	}
	return nil
}

// HardDelete permanently removes a pass row. Admin only.
func (s *PassService) HardDelete(ctx context.Context, id int) error {
	ok, err := s.passRepo.HardDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPassNotFound
	}
	return nil
}
