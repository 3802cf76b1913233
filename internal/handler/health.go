package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stillpoint/wellness-server-go/internal/config"
	"github.com/stillpoint/wellness-server-go/internal/repository"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db          pinger
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewHealthHandler(db pinger, userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *HealthHandler {
	return &HealthHandler{db: db, userRepo: userRepo, sessionRepo: sessionRepo}
}

// GET /health
// Liveness only: always 200, with a degraded status when the store is
// unreachable. Counts are best-effort.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), config.DBPingTimeout)
	defer cancel()

	status := "ok"
	dbStatus := "connected"
	users, sessions := 0, 0

	if err := h.db.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("health check: database unreachable")
		status = "degraded"
		dbStatus = "disconnected"
	} else {
		var err error
		if users, err = h.userRepo.Count(ctx); err != nil {
			log.Warn().Err(err).Msg("health check: user count failed")
			status = "degraded"
		}
		if sessions, err = h.sessionRepo.Count(ctx); err != nil {
			log.Warn().Err(err).Msg("health check: session count failed")
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"database":  dbStatus,
		"users":     users,
		"sessions":  sessions,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
