package festival

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	festivalmodel "github.com/barefootbuddy/backend/internal/model/festival"
	"github.com/barefootbuddy/backend/internal/store/postgres"
	"github.com/barefootbuddy/backend/pkg/utils"
)

// Store is the slice of the durable store the lineup surface needs.
type Store interface {
	ListArtists(ctx context.Context) ([]festivalmodel.Artist, error)
	ToggleArtistStar(ctx context.Context, artistID string) (bool, error)
	ActiveDrinkRound(ctx context.Context) (festivalmodel.DrinkRound, error)
	CompleteDrinkRound(ctx context.Context, userID string) error
	ResetDrinkRounds(ctx context.Context) error
}

// Handler exposes lineup and drink-round routes.
type Handler struct {
	store Store
}

// New creates the festival handler.
func New(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the festival routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/artists", h.handleListArtists)
	r.Post("/artists/{artistID}/star", h.handleToggleStar)
	r.Get("/drinks/round", h.handleDrinkRound)
	r.Post("/drinks/complete", h.handleCompleteRound)
	r.Post("/drinks/reset", h.handleResetRounds)
}

func (h *Handler) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.store.ListArtists(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list artists")
		utils.RespondError(w, http.StatusInternalServerError, "failed to list artists")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"artists": artists})
}

func (h *Handler) handleToggleStar(w http.ResponseWriter, r *http.Request) {
	artistID := chi.URLParam(r, "artistID")

	starred, err := h.store.ToggleArtistStar(r.Context(), artistID)
	if errors.Is(err, postgres.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "artist not found")
		return
	}
	if err != nil {
		log.WithError(err).WithField("artist", artistID).Error("failed to toggle star")
		utils.RespondError(w, http.StatusInternalServerError, "failed to toggle star")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"artist_id": artistID,
		"isStarred": starred,
	})
}

func (h *Handler) handleDrinkRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.store.ActiveDrinkRound(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to load drink round")
		utils.RespondError(w, http.StatusInternalServerError, "failed to load drink round")
		return
	}

	utils.RespondJSON(w, http.StatusOK, round)
}

func (h *Handler) handleCompleteRound(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.store.CompleteDrinkRound(r.Context(), userID); err != nil {
		log.WithError(err).WithField("user", userID).Error("failed to complete drink round")
		utils.RespondError(w, http.StatusInternalServerError, "failed to complete drink round")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Drink round completed",
	})
}

func (h *Handler) handleResetRounds(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ResetDrinkRounds(r.Context()); err != nil {
		log.WithError(err).Error("failed to reset drink rounds")
		utils.RespondError(w, http.StatusInternalServerError, "failed to reset drink rounds")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Drink rounds reset successfully",
	})
}
