package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/outcal/outcal/internal/config"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Log every request under a short correlation id
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestId := uuid.NewString()[:8]
			started := time.Now()

			log.Debugf("[%s] %s %s started", requestId, req.Method, req.URL.Path)
			next.ServeHTTP(w, req)
			log.Infof("[%s] %s %s completed in %s", requestId, req.Method, req.URL.Path, time.Since(started))
		})
	})
}
