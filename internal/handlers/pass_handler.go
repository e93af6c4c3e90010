package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/surajbi2/secureIn-backend/internal/middleware"
	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/repositories"
	"github.com/surajbi2/secureIn-backend/internal/services"
	"github.com/surajbi2/secureIn-backend/pkg/utils"
)

type PassHandler struct {
	passService *services.PassService
	actionRepo  *repositories.AdminActionLogRepository
}

func NewPassHandler(passService *services.PassService, actionRepo *repositories.AdminActionLogRepository) *PassHandler {
	return &PassHandler{passService: passService, actionRepo: actionRepo}
}

// logAction records an audit entry for a staff action on a pass. Audit
// failures are logged, not surfaced; the action itself already happened.
func (h *PassHandler) logAction(r *http.Request, actionType, targetID, description string) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return
	}

	ip := getIPAddress(r)
	entry := &models.AdminActionLog{
		AdminUserID: userID,
		ActionType:  actionType,
		TargetType:  "entry_pass",
		TargetID:    &targetID,
		Description: description,
		IPAddress:   &ip,
	}
	if err := h.actionRepo.Create(r.Context(), entry); err != nil {
		log.Printf("[Audit] Failed to record %s on pass %s: %v", actionType, targetID, err)
	}
}

// Create issues a new entry pass.
func (h *PassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	pass, err := h.passService.IssuePass(r.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVisitorNameRequired),
			errors.Is(err, services.ErrValidityRequired),
			errors.Is(err, services.ErrInvalidValidity),
			errors.Is(err, services.ErrBadDateFormat):
			utils.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[Pass] Failed to issue pass: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create pass")
		}
		return
	}

	h.logAction(r, "CREATE", pass.PassID, fmt.Sprintf("Issued pass for %s", pass.VisitorName))
	utils.JSON(w, http.StatusCreated, pass)
}

// Scan handles the combined gate scan: first scan records entry, second exit.
func (h *PassHandler) Scan(w http.ResponseWriter, r *http.Request) {
	passID := mux.Vars(r)["passId"]

	result, err := h.passService.Scan(r.Context(), passID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPassNotFound):
			utils.Error(w, http.StatusNotFound, "Pass not found")
		case errors.Is(err, services.ErrScanConflict):
			utils.Error(w, http.StatusConflict, "Pass was scanned by another gate, please retry")
		case errors.Is(err, services.ErrPassExpired),
			errors.Is(err, services.ErrPassNotYetValid),
			errors.Is(err, services.ErrPassCancelled),
			errors.Is(err, services.ErrPassAlreadyUsed):
			utils.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[Pass] Scan failed for %s: %v", passID, err)
			utils.Error(w, http.StatusInternalServerError, "Scan failed")
		}
		return
	}

	h.logAction(r, "SCAN", result.Pass.PassID, fmt.Sprintf("Recorded %s for %s", result.Action, result.Pass.VisitorName))
	utils.JSON(w, http.StatusOK, result)
}

// Verify is the public validity check behind the QR code. No auth, no entry
// state changes.
func (h *PassHandler) Verify(w http.ResponseWriter, r *http.Request) {
	passID := mux.Vars(r)["passId"]

	result, err := h.passService.VerifyPass(r.Context(), passID)
	if err != nil {
		if errors.Is(err, services.ErrPassNotFound) {
			utils.Error(w, http.StatusNotFound, "Pass not found")
			return
		}
		log.Printf("[Pass] Verify failed for %s: %v", passID, err)
		utils.Error(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// ListActive returns all live passes for the gate dashboard.
func (h *PassHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	passes, err := h.passService.ListActive(r.Context())
	if err != nil {
		log.Printf("[Pass] Failed to list passes: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch passes")
		return
	}

	if passes == nil {
		passes = []*models.EntryPass{}
	}
	utils.JSON(w, http.StatusOK, passes)
}

// SoftDelete hides a pass from every listing while keeping it for audit.
func (h *PassHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid pass id")
		return
	}

	if err := h.passService.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrPassNotFound) {
			utils.Error(w, http.StatusNotFound, "Pass not found")
			return
		}
		log.Printf("[Pass] Soft delete failed for %d: %v", id, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to delete pass")
		return
	}

	h.logAction(r, "SOFT_DELETE", strconv.Itoa(id), "Soft deleted pass")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Pass deleted"})
}

// HardDelete permanently removes a pass. Admin only.
func (h *PassHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid pass id")
		return
	}

	if err := h.passService.HardDelete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrPassNotFound) {
			utils.Error(w, http.StatusNotFound, "Pass not found")
			return
		}
		log.Printf("[Pass] Hard delete failed for %d: %v", id, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to delete pass")
		return
	}

	h.logAction(r, "DELETE", strconv.Itoa(id), "Permanently deleted pass")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Pass permanently deleted"})
}
