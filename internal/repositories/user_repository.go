package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surajbi2/secureIn-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, is_active,
		       COALESCE(totp_secret, ''), totp_enabled, totp_verified_at,
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &models.User{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsActive, &user.TOTPSecret, &user.TOTPEnabled, &user.TOTPVerifiedAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, is_active,
		       COALESCE(totp_secret, ''), totp_enabled, totp_verified_at,
		       created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	user := &models.User{}
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsActive, &user.TOTPSecret, &user.TOTPEnabled, &user.TOTPVerifiedAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, email, role, is_active, totp_enabled, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Role,
			&user.IsActive, &user.TOTPEnabled, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Deactivate disables a user account without dropping the row, so audit logs
// keep a valid foreign key.
func (r *UserRepository) Deactivate(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE users
		SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND is_active = TRUE
	`

	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) SetTOTPSecret(ctx context.Context, userID int, secret string) error {
	query := `
		UPDATE users
		SET totp_secret = $1, totp_enabled = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	_, err := r.DB.Exec(ctx, query, secret, userID)
	return err
}

func (r *UserRepository) EnableTOTP(ctx context.Context, userID int, verifiedAt time.Time) error {
	query := `
		UPDATE users
		SET totp_enabled = TRUE, totp_verified_at = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	_, err := r.DB.Exec(ctx, query, verifiedAt, userID)
	return err
}

func (r *UserRepository) DisableTOTP(ctx context.Context, userID int) error {
	query := `
		UPDATE users
		SET totp_secret = NULL, totp_enabled = FALSE, totp_verified_at = NULL,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	_, err := r.DB.Exec(ctx, query, userID)
	return err
}
