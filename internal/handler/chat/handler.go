package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	chatservice "github.com/barefootbuddy/backend/internal/service/chat"
	"github.com/barefootbuddy/backend/pkg/utils"
)

// Service is the slice of the chat orchestrator the HTTP layer needs.
type Service interface {
	CreateSession(ctx context.Context, userID string) (string, error)
	History(ctx context.Context, sessionID string) ([]chatservice.HistoryEntry, error)
	SendMessage(ctx context.Context, sessionID, userText, userID string) chatservice.BotReply
}

// Handler exposes the chat REST surface.
type Handler struct {
	svc Service
}

// New creates the chat handler.
func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/session", h.handleCreateSession)
	r.Get("/chat/history/{sessionID}", h.handleHistory)
	r.Post("/chat/{sessionID}", h.handleSendMessage)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	sessionID, err := h.svc.CreateSession(r.Context(), payload.UserID)
	if err != nil {
		log.WithError(err).Error("failed to create chat session")
		utils.RespondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"session_id": sessionID,
		"status":     "created",
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	history, err := h.svc.History(r.Context(), sessionID)
	if err != nil {
		log.WithError(err).WithField("session", sessionID).Error("failed to load chat history")
		utils.RespondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"messages": history})
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "anonymous"
	}

	// Chat turns always succeed from the caller's perspective; the
	// fallback reply is the degraded success body.
	reply := h.svc.SendMessage(r.Context(), sessionID, payload.Message, userID)
	utils.RespondJSON(w, http.StatusOK, reply)
}
