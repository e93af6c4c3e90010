package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

func (r *TOTPRepository) LogVerificationAttempt(ctx context.Context, userID int, ipAddress string, success bool) error {
	query := `
		INSERT INTO totp_verification_attempts (user_id, ip_address, success)
		VALUES ($1, $2, $3)
	`

	_, err := r.DB.Exec(ctx, query, userID, ipAddress, success)
	return err
}

// CountRecentFailures counts failed code attempts in the last 15 minutes,
// used to lock out brute-force guessing.
func (r *TOTPRepository) CountRecentFailures(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT COUNT(*) FROM totp_verification_attempts
		WHERE user_id = $1
		  AND success = FALSE
		  AND attempted_at > NOW() - INTERVAL '15 minutes'
	`

	var count int
	err := r.DB.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
