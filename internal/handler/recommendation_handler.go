package handler

import (
	"net/http"

	"github.com/charmbracelet/log"

	"habit-tracker/internal/service"
)

type RecommendationHandler struct {
	recService *service.RecommendationService
	logger     *log.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, logger *log.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		logger:     logger,
	}
}

func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.recService.RecommendAll(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, recs)
}
