package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surajbi2/secureIn-backend/internal/models"
)

type AdminActionLogRepository struct {
	DB *pgxpool.Pool
}

func NewAdminActionLogRepository(db *pgxpool.Pool) *AdminActionLogRepository {
	return &AdminActionLogRepository{DB: db}
}

func (r *AdminActionLogRepository) Create(ctx context.Context, entry *models.AdminActionLog) error {
	query := `
		INSERT INTO admin_action_logs (admin_user_id, action_type, target_type, target_id, description, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.Exec(ctx, query,
		entry.AdminUserID, entry.ActionType, entry.TargetType,
		entry.TargetID, entry.Description, entry.IPAddress,
	)
	return err
}

func (r *AdminActionLogRepository) List(ctx context.Context, limit int) ([]*models.AdminActionLog, error) {
	query := `
		SELECT id, admin_user_id, action_type, target_type, target_id,
		       COALESCE(description, ''), ip_address, created_at
		FROM admin_action_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AdminActionLog
	for rows.Next() {
		entry := &models.AdminActionLog{}
		err := rows.Scan(
			&entry.ID, &entry.AdminUserID, &entry.ActionType, &entry.TargetType,
			&entry.TargetID, &entry.Description, &entry.IPAddress, &entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
