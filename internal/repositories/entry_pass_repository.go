package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surajbi2/secureIn-backend/internal/models"
)

type EntryPassRepository struct {
	DB *pgxpool.Pool
}

func NewEntryPassRepository(db *pgxpool.Pool) *EntryPassRepository {
	return &EntryPassRepository{DB: db}
}

const passColumns = `
	p.id, p.pass_id, p.visitor_name, p.visitor_phone, p.visit_type,
	p.id_type, p.id_number, p.event_id, p.student_name, p.relation_to_student,
	p.department, p.purpose, p.valid_from, p.valid_until, p.qr_code,
	p.status, p.entry_status, p.entry_time, p.exit_time, p.deleted_at,
	p.created_by, p.created_at, p.updated_at, e.name AS event_name`

func scanPass(row pgx.Row) (*models.EntryPass, error) {
	pass := &models.EntryPass{}
	err := row.Scan(
		&pass.ID, &pass.PassID, &pass.VisitorName, &pass.VisitorPhone, &pass.VisitType,
		&pass.IDType, &pass.IDNumber, &pass.EventID, &pass.StudentName, &pass.RelationToStudent,
		&pass.Department, &pass.Purpose, &pass.ValidFrom, &pass.ValidUntil, &pass.QRCode,
		&pass.Status, &pass.EntryStatus, &pass.EntryTime, &pass.ExitTime, &pass.DeletedAt,
		&pass.CreatedBy, &pass.CreatedAt, &pass.UpdatedAt, &pass.EventName,
	)
	if err != nil {
		return nil, err
	}
	return pass, nil
}

// Create inserts a new entry pass. A unique index on UPPER(pass_id) over live
// rows rejects short-code collisions; callers retry with a fresh code.
func (r *EntryPassRepository) Create(ctx context.Context, pass *models.EntryPass) error {
	query := `
		INSERT INTO entry_passes (
			pass_id, visitor_name, visitor_phone, visit_type, id_type, id_number,
			event_id, student_name, relation_to_student, department, purpose,
			valid_from, valid_until, qr_code, status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 'active', $15)
		RETURNING id, status, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		pass.PassID, pass.VisitorName, pass.VisitorPhone, pass.VisitType,
		pass.IDType, pass.IDNumber, pass.EventID, pass.StudentName,
		pass.RelationToStudent, pass.Department, pass.Purpose,
		pass.ValidFrom, pass.ValidUntil, pass.QRCode, pass.CreatedBy,
	).Scan(&pass.ID, &pass.Status, &pass.CreatedAt, &pass.UpdatedAt)
}

// GetByPassID looks up a live pass by its short code, case-insensitively.
// Soft-deleted passes are invisible here.
func (r *EntryPassRepository) GetByPassID(ctx context.Context, passID string) (*models.EntryPass, error) {
	query := `
		SELECT ` + passColumns + `
		FROM entry_passes p
		LEFT JOIN events e ON p.event_id = e.id
		WHERE UPPER(p.pass_id) = UPPER($1) AND p.deleted_at IS NULL
	`

	return scanPass(r.DB.QueryRow(ctx, query, passID))
}

// GetByID retrieves a pass row by primary key, including soft-deleted rows.
func (r *EntryPassRepository) GetByID(ctx context.Context, id int) (*models.EntryPass, error) {
	query := `
		SELECT ` + passColumns + `
		FROM entry_passes p
		LEFT JOIN events e ON p.event_id = e.id
		WHERE p.id = $1
	`

	return scanPass(r.DB.QueryRow(ctx, query, id))
}

// MarkExpired persists an expired verdict for a single pass. The status guard
// keeps a concurrent scan or cancellation from being overwritten.
func (r *EntryPassRepository) MarkExpired(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE entry_passes
		SET status = 'expired', updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status = 'active'
	`

	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RecordEntry transitions an unscanned active pass to 'entered'. The
// entry_status IS NULL condition makes the update a compare-and-set: a
// concurrent scan of the same pass leaves zero rows affected.
func (r *EntryPassRepository) RecordEntry(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE entry_passes
		SET entry_status = 'entered', entry_time = CURRENT_TIMESTAMP,
		    exit_time = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status = 'active' AND entry_status IS NULL
	`

	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RecordExit completes the entry/exit cycle. Once exited the pass is spent,
// so status moves to 'used' in the same statement.
func (r *EntryPassRepository) RecordExit(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE entry_passes
		SET entry_status = 'exited', exit_time = CURRENT_TIMESTAMP,
		    status = 'used', updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND entry_status = 'entered' AND exit_time IS NULL
	`

	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ExpireSweep marks every overdue active pass as expired and returns the
// number of rows touched.
func (r *EntryPassRepository) ExpireSweep(ctx context.Context) (int64, error) {
	query := `
		UPDATE entry_passes
		SET status = 'expired', updated_at = CURRENT_TIMESTAMP
		WHERE status = 'active' AND valid_until < CURRENT_TIMESTAMP
	`

	tag, err := r.DB.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListActive returns all live passes ordered for the gate dashboard: passes
// that expired today first (staff chase those), then active ones, then the
// rest, newest validity window first within each group.
func (r *EntryPassRepository) ListActive(ctx context.Context) ([]*models.EntryPass, error) {
	query := `
		SELECT ` + passColumns + `
		FROM entry_passes p
		LEFT JOIN events e ON p.event_id = e.id
		WHERE p.deleted_at IS NULL
		ORDER BY CASE
			WHEN p.status = 'expired' AND (p.valid_until AT TIME ZONE 'Asia/Kolkata')::date = (CURRENT_TIMESTAMP AT TIME ZONE 'Asia/Kolkata')::date THEN 0
			WHEN p.status = 'active' THEN 1
			ELSE 2
		END, p.valid_until DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passes []*models.EntryPass
	for rows.Next() {
		pass, err := scanPass(rows)
		if err != nil {
			return nil, err
		}
		passes = append(passes, pass)
	}

	return passes, rows.Err()
}

// ListByDateRange returns live passes created within [from, to) for reports.
func (r *EntryPassRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.EntryPass, error) {
	query := `
		SELECT ` + passColumns + `
		FROM entry_passes p
		LEFT JOIN events e ON p.event_id = e.id
		WHERE p.deleted_at IS NULL
		  AND p.created_at >= $1 AND p.created_at < $2
		ORDER BY p.created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passes []*models.EntryPass
	for rows.Next() {
		pass, err := scanPass(rows)
		if err != nil {
			return nil, err
		}
		passes = append(passes, pass)
	}

	return passes, rows.Err()
}

// SoftDelete hides a pass from every read path while keeping the row for
// audit. Already-deleted passes report zero rows affected.
func (r *EntryPassRepository) SoftDelete(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE entry_passes
		SET status = 'deleted', deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// HardDelete permanently removes a pass row.
func (r *EntryPassRepository) HardDelete(ctx context.Context, id int) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM entry_passes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountPassesForEvent counts live passes attached to an event. Used to block
// deletion of events that still have passes issued against them.
func (r *EntryPassRepository) CountPassesForEvent(ctx context.Context, eventID int) (int, error) {
	query := `
		SELECT COUNT(*) FROM entry_passes
		WHERE event_id = $1 AND deleted_at IS NULL
	`

	var count int
	err := r.DB.QueryRow(ctx, query, eventID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DashboardCounts aggregates the gate dashboard numbers in one round trip.
func (r *EntryPassRepository) DashboardCounts(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE deleted_at IS NULL) AS total,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'active') AS active,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND entry_status = 'entered') AS inside,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'expired') AS expired,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'used') AS used,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'cancelled') AS cancelled,
			COUNT(*) FILTER (WHERE deleted_at IS NULL
				AND (created_at AT TIME ZONE 'Asia/Kolkata')::date = (CURRENT_TIMESTAMP AT TIME ZONE 'Asia/Kolkata')::date) AS issued_today,
			COUNT(*) FILTER (WHERE deleted_at IS NULL
				AND (entry_time AT TIME ZONE 'Asia/Kolkata')::date = (CURRENT_TIMESTAMP AT TIME ZONE 'Asia/Kolkata')::date) AS entries_today
		FROM entry_passes
	`

	var total, active, inside, expired, used, cancelled, issuedToday, entriesToday int
	err := r.DB.QueryRow(ctx, query).Scan(
		&total, &active, &inside, &expired, &used, &cancelled, &issuedToday, &entriesToday,
	)
	if err != nil {
		return nil, err
	}

	return map[string]int{
		"total_passes":  total,
		"active":        active,
		"inside_now":    inside,
		"expired":       expired,
		"used":          used,
		"cancelled":     cancelled,
		"issued_today":  issuedToday,
		"entries_today": entriesToday,
	}, nil
}

// RecentVisitors returns the most recently scanned-in visitors.
func (r *EntryPassRepository) RecentVisitors(ctx context.Context, limit int) ([]*models.EntryPass, error) {
	query := `
		SELECT ` + passColumns + `
		FROM entry_passes p
		LEFT JOIN events e ON p.event_id = e.id
		WHERE p.deleted_at IS NULL AND p.entry_time IS NOT NULL
		ORDER BY p.entry_time DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passes []*models.EntryPass
	for rows.Next() {
		pass, err := scanPass(rows)
		if err != nil {
			return nil, err
		}
		passes = append(passes, pass)
	}

	return passes, rows.Err()
}
