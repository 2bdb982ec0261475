package handler

import (
	"context"
	"net/http"
	"os"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Routes bundles everything the HTTP surface needs.
type Routes struct {
	Habits          *HabitHandler
	Logs            *LogHandler
	Recommendations *RecommendationHandler

	// Ping checks storage for /health.
	Ping func(ctx context.Context) error
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	// StaticDir is served at / when it exists.
	StaticDir string

	Middleware []mux.MiddlewareFunc
}

// NewRouter wires the API routes and wraps them with CORS.
func NewRouter(rt Routes) http.Handler {
	r := mux.NewRouter()
	for _, mw := range rt.Middleware {
		r.Use(mw)
	}

	r.HandleFunc("/health", rt.health).Methods("GET")
	if rt.Metrics != nil {
		r.Handle("/metrics", rt.Metrics).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/habits", rt.Habits.ListHabits).Methods("GET")
	api.HandleFunc("/habits", rt.Habits.CreateHabit).Methods("POST")
	api.HandleFunc("/habits/{id:[0-9]+}", rt.Habits.GetHabit).Methods("GET")
	api.HandleFunc("/habits/{id:[0-9]+}", rt.Habits.UpdateHabit).Methods("PUT")
	api.HandleFunc("/habits/{id:[0-9]+}", rt.Habits.DeleteHabit).Methods("DELETE")
	api.HandleFunc("/habits/{id:[0-9]+}/log", rt.Logs.LogHabit).Methods("POST")
	api.HandleFunc("/habits/{id:[0-9]+}/logs", rt.Logs.ListLogs).Methods("GET")
	api.HandleFunc("/recommendations", rt.Recommendations.GetRecommendations).Methods("GET")

	if rt.StaticDir != "" {
		if info, err := os.Stat(rt.StaticDir); err == nil && info.IsDir() {
			r.PathPrefix("/").Handler(http.FileServer(http.Dir(rt.StaticDir))).Methods("GET")
		}
	}

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length", "X-Request-ID"}),
	)
	return cors(r)
}

func (rt Routes) health(w http.ResponseWriter, r *http.Request) {
	if rt.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := rt.Ping(ctx); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "habit-tracker",
	})
}
