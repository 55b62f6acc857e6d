package app

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/outcal/outcal/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Health
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	// Calendar folders
	r.HandleFunc("/api/calendars", deps.OutlookHandler.GetCalendars).Methods("GET")

	// Snapshot of the latest synchronization run
	r.HandleFunc("/api/events", deps.SnapshotHandler.GetSnapshot).Methods("GET")
	r.HandleFunc("/api/sync", deps.SnapshotHandler.TriggerSync).Methods("POST")
	r.HandleFunc("/api/export/json", deps.SnapshotHandler.ExportJSON).Methods("GET")

	// Meeting statistics
	r.HandleFunc("/api/stats", deps.StatsHandler.GetStats).Methods("GET")
}
