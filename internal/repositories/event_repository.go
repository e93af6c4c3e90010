package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surajbi2/secureIn-backend/internal/models"
)

type EventRepository struct {
	DB *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (name, description, venue, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		event.Name, event.Description, event.Venue,
		event.StartDate, event.EndDate, event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *EventRepository) Get(ctx context.Context, id int) (*models.Event, error) {
	query := `
		SELECT ev.id, ev.name, ev.description, ev.venue, ev.start_date, ev.end_date,
		       ev.created_by, ev.created_at, ev.updated_at, u.name AS creator_name
		FROM events ev
		LEFT JOIN users u ON ev.created_by = u.id
		WHERE ev.id = $1
	`

	event := &models.Event{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&event.ID, &event.Name, &event.Description, &event.Venue,
		&event.StartDate, &event.EndDate, &event.CreatedBy,
		&event.CreatedAt, &event.UpdatedAt, &event.CreatorName,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	query := `
		SELECT ev.id, ev.name, ev.description, ev.venue, ev.start_date, ev.end_date,
		       ev.created_by, ev.created_at, ev.updated_at, u.name AS creator_name
		FROM events ev
		LEFT JOIN users u ON ev.created_by = u.id
		ORDER BY ev.start_date DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		err := rows.Scan(
			&event.ID, &event.Name, &event.Description, &event.Venue,
			&event.StartDate, &event.EndDate, &event.CreatedBy,
			&event.CreatedAt, &event.UpdatedAt, &event.CreatorName,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, id int, name, description, venue string, startDate, endDate time.Time) (bool, error) {
	query := `
		UPDATE events
		SET name = $1, description = $2, venue = $3, start_date = $4, end_date = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`

	tag, err := r.DB.Exec(ctx, query, name, description, venue, startDate, endDate, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
