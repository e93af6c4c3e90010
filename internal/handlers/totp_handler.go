package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/surajbi2/secureIn-backend/internal/middleware"
	"github.com/surajbi2/secureIn-backend/internal/services"
	"github.com/surajbi2/secureIn-backend/pkg/utils"
)

type TOTPHandler struct {
	totpService *services.TOTPService
	userService *services.UserService
}

func NewTOTPHandler(totpService *services.TOTPService, userService *services.UserService) *TOTPHandler {
	return &TOTPHandler{totpService: totpService, userService: userService}
}

// Setup generates a fresh TOTP secret and provisioning QR for the current user.
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "User not found")
		return
	}

	setup, err := h.totpService.GenerateSetup(r.Context(), user)
	if err != nil {
		log.Printf("[TOTP] Setup failed for user %d: %v", userID, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to generate 2FA setup")
		return
	}

	utils.JSON(w, http.StatusOK, setup)
}

// Enable verifies a first code against the pending secret and turns 2FA on.
func (h *TOTPHandler) Enable(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.totpService.VerifyAndEnable(r.Context(), userID, req.Code, getIPAddress(r)); err != nil {
		switch {
		case errors.Is(err, services.ErrTooManyAttempts):
			utils.Error(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, services.ErrInvalidTOTPCode), errors.Is(err, services.ErrNoTOTPSecret):
			utils.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[TOTP] Enable failed for user %d: %v", userID, err)
			utils.Error(w, http.StatusInternalServerError, "Failed to enable 2FA")
		}
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "2FA enabled"})
}

// Disable turns 2FA off after re-verifying password and current code.
func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req struct {
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.totpService.Disable(r.Context(), userID, req.Password, req.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPassword), errors.Is(err, services.ErrInvalidTOTPCode):
			utils.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[TOTP] Disable failed for user %d: %v", userID, err)
			utils.Error(w, http.StatusInternalServerError, "Failed to disable 2FA")
		}
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "2FA disabled"})
}
