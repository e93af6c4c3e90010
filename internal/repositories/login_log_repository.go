package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surajbi2/secureIn-backend/internal/models"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

func (r *LoginLogRepository) Create(ctx context.Context, userID int, ipAddress, userAgent string) error {
	query := `
		INSERT INTO login_logs (user_id, ip_address, user_agent)
		VALUES ($1, $2, $3)
	`

	_, err := r.DB.Exec(ctx, query, userID, ipAddress, userAgent)
	return err
}

func (r *LoginLogRepository) List(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	query := `
		SELECT l.id, l.user_id, COALESCE(l.ip_address, ''), COALESCE(l.user_agent, ''),
		       l.login_at, l.logout_at, u.name, u.email
		FROM login_logs l
		JOIN users u ON l.user_id = u.id
		ORDER BY l.login_at DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.LoginLog
	for rows.Next() {
		entry := &models.LoginLog{}
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.IPAddress, &entry.UserAgent,
			&entry.LoginAt, &entry.LogoutAt, &entry.UserName, &entry.UserEmail,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
