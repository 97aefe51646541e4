package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kennelbot/kennel/pkg/logger"
)

// NewRouter builds the status API routes.
func NewRouter(h *Handler, log *logger.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(loggingMiddleware(log))
	router.Use(recoveryMiddleware(log))

	router.HandleFunc("/health", h.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/strategy", h.GetStrategy).Methods("GET")
	api.HandleFunc("/dogs", h.GetDogs).Methods("GET")
	api.HandleFunc("/positions", h.GetPositions).Methods("GET")
	api.HandleFunc("/runs", h.GetRuns).Methods("GET")
	api.HandleFunc("/scheduler", h.GetScheduler).Methods("GET")

	return router
}

// loggingMiddleware logs each request with method, path, status and duration
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   wrapped.status,
				"duration": time.Since(start).String(),
				"remote":   r.RemoteAddr,
			}).Info("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics so a bad handler cannot take
// down the scheduler running in the same process.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered in HTTP handler")
					respondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
