package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/services"
	"github.com/surajbi2/secureIn-backend/pkg/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		log.Printf("[User] Failed to list users: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	if users == nil {
		users = []*models.User{}
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.userService.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.Error(w, http.StatusNotFound, "User not found or already inactive")
			return
		}
		log.Printf("[User] Failed to deactivate user %d: %v", id, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to deactivate user")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "User deactivated"})
}
