package api

import (
	"encoding/json"
	"net/http"

	"serwer-notatek/internal/config"
	"serwer-notatek/internal/database"
	"serwer-notatek/internal/share"
)

type Server struct {
	config *config.Config
	store  *database.Store
	shares *share.Manager
}

func NewServer(cfg *config.Config, store *database.Store, shares *share.Manager) *Server {
	return &Server{
		config: cfg,
		store:  store,
		shares: shares,
	}
}

// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {string}  string "Service Unavailable"
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.GetPool().Ping(r.Context()); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
