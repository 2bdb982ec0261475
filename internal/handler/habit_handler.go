package handler

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"habit-tracker/internal/model"
	"habit-tracker/internal/service"
)

type HabitHandler struct {
	habitService *service.HabitService
	logger       *log.Logger
}

func NewHabitHandler(habitService *service.HabitService, logger *log.Logger) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
		logger:       logger,
	}
}

type createHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	Category    string `json:"category"`
}

func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := h.habitService.ListHabits(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	habit, err := h.habitService.CreateHabit(r.Context(), service.HabitInput{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Category:    req.Category,
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("habit created", "id", habit.ID, "name", habit.Name)
	respondWithJSON(w, http.StatusCreated, habit)
}

func (h *HabitHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := habitID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Habit not found")
		return
	}

	habit, err := h.habitService.GetHabit(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := habitID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Habit not found")
		return
	}

	var body map[string]json.RawMessage
	if err := decodeBody(r, &body); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	fields, err := habitFields(body)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	if err := h.habitService.UpdateHabit(r.Context(), id, fields); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Habit updated successfully")
}

func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := habitID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Habit not found")
		return
	}

	if err := h.habitService.DeleteHabit(r.Context(), id); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Habit deleted successfully")
}

// habitFields turns a partial JSON object into update fields. Recognized
// keys must hold a string or null; null clears the field. Other keys are
// passed through for the service to ignore.
func habitFields(body map[string]json.RawMessage) (map[string]string, error) {
	fields := make(map[string]string, len(body))
	for key, raw := range body {
		if !isHabitField(key) {
			fields[key] = string(raw)
			continue
		}
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, service.NewValidationError("Field '%s' must be a string", key)
		}
		if value != nil {
			fields[key] = *value
		} else {
			fields[key] = ""
		}
	}
	return fields, nil
}

func isHabitField(key string) bool {
	for _, f := range model.HabitFields {
		if f == key {
			return true
		}
	}
	return false
}
