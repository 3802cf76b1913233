package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stillpoint/wellness-server-go/internal/apperr"
	"github.com/stillpoint/wellness-server-go/internal/middleware"
	"github.com/stillpoint/wellness-server-go/internal/model"
	"github.com/stillpoint/wellness-server-go/internal/service"
)

type SessionHandler struct {
	sessionService *service.SessionService
	authMiddleware func(http.Handler) http.Handler
}

func NewSessionHandler(sessionService *service.SessionService, authMiddleware func(http.Handler) http.Handler) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		authMiddleware: authMiddleware,
	}
}

func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/public", h.ListPublic)

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)
		r.Get("/my", h.ListMine)
		r.Get("/my/{id}", h.GetMine)
		r.Post("/draft", h.SaveDraft)
		r.Post("/publish", h.Publish)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// sessionRequest is the shared body shape for draft and publish. Tags accept
// either an array or a comma-separated string.
type sessionRequest struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Tags        model.TagList `json:"tags"`
	VideoURL    string        `json:"video_url"`
	Thumbnail   string        `json:"thumbnail"`
	Description string        `json:"description"`
	Duration    string        `json:"duration"`
}

func (req *sessionRequest) toInput() service.SaveSessionInput {
	return service.SaveSessionInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		VideoURL:    req.VideoURL,
		Thumbnail:   req.Thumbnail,
		Duration:    req.Duration,
	}
}

// GET /sessions/public
func (h *SessionHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.ListPublic(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list public sessions")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// GET /sessions/my
func (h *SessionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	sessions, err := h.sessionService.ListMine(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("ownerId", user.ID).Msg("failed to list own sessions")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// GET /sessions/my/{id}
func (h *SessionHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")

	session, err := h.sessionService.GetMine(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

// POST /sessions/draft
func (h *SessionHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, false)
}

// POST /sessions/publish
func (h *SessionHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, true)
}

func (h *SessionHandler) save(w http.ResponseWriter, r *http.Request, publish bool) {
	user := middleware.GetUser(r.Context())

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	var (
		session *model.Session
		err     error
	)
	if publish {
		session, err = h.sessionService.Publish(r.Context(), user.ID, req.ID, req.toInput())
	} else {
		session, err = h.sessionService.SaveDraft(r.Context(), user.ID, req.ID, req.toInput())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

// DELETE /sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.sessionService.Delete(r.Context(), user.ID, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
