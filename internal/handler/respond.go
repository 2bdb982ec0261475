package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"habit-tracker/internal/service"
)

var errBadBody = errors.New("invalid request body")

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithMessage(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

// respondWithServiceError maps service errors onto HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, l *log.Logger, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		respondWithError(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Habit not found")
	case errors.Is(err, errBadBody):
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
	default:
		l.Error("request failed", "err", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody reads a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errBadBody
}

// habitID reads the {id} route variable. The route pattern only admits digits.
func habitID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
