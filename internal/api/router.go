package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hmelo/puckline/internal/api/handlers"
	"github.com/hmelo/puckline/pkg/database"
	"github.com/hmelo/puckline/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	predictions *handlers.PredictionsHandler,
	lines *handlers.LinesHandler,
	db *database.DB,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler(db)).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Prediction endpoints
	api.HandleFunc("/predictions/generate", predictions.Generate).Methods("POST")
	api.HandleFunc("/predictions/{date}", predictions.GetByDate).Methods("GET")
	api.HandleFunc("/predictions/{date}/top", predictions.GetTopByDate).Methods("GET")
	api.HandleFunc("/predictions/{date}/summary", predictions.GetSummary).Methods("GET")

	// Lineup endpoints
	api.HandleFunc("/lines/{team}", lines.GetTeamLines).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server and database health status
func healthCheckHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"status":  "ok",
			"service": "puckline-api",
		}

		status := http.StatusOK
		if db != nil {
			health, err := db.HealthCheck(r.Context())
			if err != nil {
				resp["status"] = "degraded"
				resp["database"] = "unreachable"
				status = http.StatusServiceUnavailable
			} else {
				resp["database"] = health
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp)
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
