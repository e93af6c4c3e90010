package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/surajbi2/secureIn-backend/internal/middleware"
	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/services"
	"github.com/surajbi2/secureIn-backend/pkg/utils"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		log.Printf("[Event] Failed to list events: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	if events == nil {
		events = []*models.Event{}
	}
	utils.JSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			utils.Error(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("[Event] Failed to fetch event %d: %v", id, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	utils.JSON(w, http.StatusOK, event)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	event, err := h.eventService.Create(r.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNameRequired),
			errors.Is(err, services.ErrEventDatesInvalid),
			errors.Is(err, services.ErrBadDateFormat):
			utils.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[Event] Failed to create event: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create event")
		}
		return
	}

	utils.JSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	var req models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.eventService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			utils.Error(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, services.ErrEventNameRequired),
			errors.Is(err, services.ErrEventDatesInvalid),
			errors.Is(err, services.ErrBadDateFormat):
			utils.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[Event] Failed to update event %d: %v", id, err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update event")
		}
		return
	}

	utils.JSON(w, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			utils.Error(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, services.ErrEventHasPasses):
			utils.Error(w, http.StatusConflict, "Cannot delete event with passes issued against it")
		default:
			log.Printf("[Event] Failed to delete event %d: %v", id, err)
			utils.Error(w, http.StatusInternalServerError, "Failed to delete event")
		}
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}
