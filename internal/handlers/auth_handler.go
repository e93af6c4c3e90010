package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/surajbi2/secureIn-backend/internal/middleware"
	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/repositories"
	"github.com/surajbi2/secureIn-backend/internal/services"
	"github.com/surajbi2/secureIn-backend/pkg/utils"
)

type AuthHandler struct {
	userService  *services.UserService
	totpService  *services.TOTPService
	loginLogRepo *repositories.LoginLogRepository
}

func NewAuthHandler(userService *services.UserService, totpService *services.TOTPService, loginLogRepo *repositories.LoginLogRepository) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		totpService:  totpService,
		loginLogRepo: loginLogRepo,
	}
}

// getIPAddress extracts the client IP, honoring reverse-proxy headers.
func getIPAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		addr = addr[:idx]
	}
	return addr
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.Error(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, services.ErrUserDisabled):
			utils.Error(w, http.StatusForbidden, "Account is disabled")
		default:
			log.Printf("[Auth] Login failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	if result.Pending != nil {
		utils.JSON(w, http.StatusOK, result.Pending)
		return
	}

	if err := h.loginLogRepo.Create(r.Context(), result.Auth.User.ID, getIPAddress(r), r.UserAgent()); err != nil {
		log.Printf("[Auth] Failed to record login for user %d: %v", result.Auth.User.ID, err)
	}

	utils.JSON(w, http.StatusOK, result.Auth)
}

// Verify2FA exchanges a temp token plus an authenticator code for a session.
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TempToken string `json:"temp_token"`
		Code      string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	authResp, err := h.totpService.VerifyLogin(r.Context(), req.TempToken, req.Code, getIPAddress(r))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTooManyAttempts):
			utils.Error(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, services.ErrInvalidTOTPCode), errors.Is(err, services.ErrTOTPNotEnabled):
			utils.Error(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, services.ErrUserDisabled):
			utils.Error(w, http.StatusForbidden, "Account is disabled")
		default:
			utils.Error(w, http.StatusUnauthorized, "Verification failed")
		}
		return
	}

	if err := h.loginLogRepo.Create(r.Context(), authResp.User.ID, getIPAddress(r), r.UserAgent()); err != nil {
		log.Printf("[Auth] Failed to record login for user %d: %v", authResp.User.ID, err)
	}

	utils.JSON(w, http.StatusOK, authResp)
}

// Verify returns the fresh user row behind the presented token, so clients
// can restore a session without caching stale role or status fields.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.Error(w, http.StatusUnauthorized, "User not found")
			return
		}
		log.Printf("[Auth] Token verify failed for user %d: %v", userID, err)
		utils.Error(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// Register creates a staff or admin account. Admin only.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			utils.Error(w, http.StatusConflict, "Email is already registered")
		case errors.Is(err, services.ErrInvalidRole),
			errors.Is(err, services.ErrWeakPassword),
			errors.Is(err, services.ErrInvalidCredentials):
			utils.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[Auth] Registration failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	utils.JSON(w, http.StatusCreated, user)
}
