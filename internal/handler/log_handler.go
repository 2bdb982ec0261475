package handler

import (
	"net/http"

	"github.com/charmbracelet/log"

	"habit-tracker/internal/service"
)

type LogHandler struct {
	logService *service.LogService
	logger     *log.Logger
}

func NewLogHandler(logService *service.LogService, logger *log.Logger) *LogHandler {
	return &LogHandler{
		logService: logService,
		logger:     logger,
	}
}

type logHabitRequest struct {
	Status  string `json:"status"`
	LogDate string `json:"log_date"`
}

// LogHabit appends a completion. The body is optional.
func (h *LogHandler) LogHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := habitID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Habit not found")
		return
	}

	var req logHabitRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	entry, err := h.logService.AppendLog(r.Context(), id, service.LogInput{
		Status:  req.Status,
		LogDate: req.LogDate,
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("habit logged", "habit_id", id, "log_date", entry.LogDate, "status", entry.Status)
	respondWithMessage(w, http.StatusCreated, "Habit logged successfully")
}

func (h *LogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := habitID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Habit not found")
		return
	}

	logs, err := h.logService.ListLogs(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, logs)
}
