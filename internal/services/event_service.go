package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/repositories"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventNameRequired = errors.New("event name is required")
	ErrEventDatesInvalid = errors.New("event end date must not be before start date")
	ErrEventHasPasses    = errors.New("event has passes issued against it")
)

type EventService struct {
	eventRepo *repositories.EventRepository
	passRepo  *repositories.EntryPassRepository
}

func NewEventService(eventRepo *repositories.EventRepository, passRepo *repositories.EntryPassRepository) *EventService {
	return &EventService{eventRepo: eventRepo, passRepo: passRepo}
}

func parseEventDates(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := parseValidity(startDate, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseValidity(endDate, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrEventDatesInvalid
	}
	return start, end, nil
}

func (s *EventService) Create(ctx context.Context, req *models.CreateEventRequest, createdBy int) (*models.Event, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEventNameRequired
	}

	start, end, err := parseEventDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	optional := func(v string) *string {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return &v
	}

	event := &models.Event{
		Name:        strings.TrimSpace(req.Name),
		Description: optional(req.Description),
		Venue:       optional(req.Venue),
		StartDate:   start,
		EndDate:     end,
		CreatedBy:   &createdBy,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.List(ctx)
}

func (s *EventService) Get(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.eventRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id int, req *models.UpdateEventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEventNameRequired
	}

	start, end, err := parseEventDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	ok, err := s.eventRepo.Update(ctx, id, strings.TrimSpace(req.Name), req.Description, req.Venue, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEventNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes an event, refusing while live passes still reference it.
func (s *EventService) Delete(ctx context.Context, id int) error {
	count, err := s.passRepo.CountPassesForEvent(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEventHasPasses
	}

	ok, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEventNotFound
	}
	return nil
}
