package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/repositories"
	"github.com/surajbi2/secureIn-backend/pkg/utils"
)

type LogHandler struct {
	loginLogRepo *repositories.LoginLogRepository
	actionRepo   *repositories.AdminActionLogRepository
}

func NewLogHandler(loginLogRepo *repositories.LoginLogRepository, actionRepo *repositories.AdminActionLogRepository) *LogHandler {
	return &LogHandler{loginLogRepo: loginLogRepo, actionRepo: actionRepo}
}

func logLimit(r *http.Request) int {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	return limit
}

func (h *LogHandler) LoginLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.loginLogRepo.List(r.Context(), logLimit(r))
	if err != nil {
		log.Printf("[Logs] Failed to list login logs: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch login logs")
		return
	}

	if logs == nil {
		logs = []*models.LoginLog{}
	}
	utils.JSON(w, http.StatusOK, logs)
}

func (h *LogHandler) AdminActionLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.actionRepo.List(r.Context(), logLimit(r))
	if err != nil {
		log.Printf("[Logs] Failed to list action logs: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch action logs")
		return
	}

	if logs == nil {
		logs = []*models.AdminActionLog{}
	}
	utils.JSON(w, http.StatusOK, logs)
}
