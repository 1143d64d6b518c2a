package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"tokenpulse/internal/observability"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(h *Handlers, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", healthzHandler).Methods(http.MethodGet)
	r.Handle("/metrics", observability.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/rankings", h.GetRankings).Methods(http.MethodGet)
	api.HandleFunc("/assets/{id}/analysis", h.GetAssetAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/cohort", h.GetCohort).Methods(http.MethodGet)
	api.HandleFunc("/leaders/{kind}", h.GetLeaders).Methods(http.MethodGet)

	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))

	return r
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "tokenpulse",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}

// recoveryMiddleware converts handler panics into 500 responses.
func recoveryMiddleware(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("error", err).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
