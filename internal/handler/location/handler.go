package location

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	locationmodel "github.com/barefootbuddy/backend/internal/model/location"
	locationservice "github.com/barefootbuddy/backend/internal/service/location"
	"github.com/barefootbuddy/backend/pkg/utils"
)

// Service is the slice of the location service the HTTP layer needs.
type Service interface {
	UpdateLocation(ctx context.Context, userID string, latitude, longitude, accuracy float64, ghost bool) error
	SetGhostMode(ctx context.Context, userID string, ghost bool) error
	GroupLocations(ctx context.Context, excludeUser string) (map[string]locationmodel.Location, error)
	UpdatePresence(ctx context.Context, userID string, online bool) error
	PresenceStatus(ctx context.Context) (map[string]locationmodel.Presence, error)
}

// Handler exposes the location and presence REST surface.
type Handler struct {
	svc         Service
	broadcaster locationservice.Broadcaster
}

// New creates the location handler. broadcaster may be nil.
func New(svc Service, broadcaster locationservice.Broadcaster) *Handler {
	return &Handler{svc: svc, broadcaster: broadcaster}
}

// RegisterRoutes mounts the location and presence routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/location/update/{userID}", h.handleUpdateLocation)
	r.Get("/location/group/{groupID}", h.handleGroupLocations)
	r.Post("/location/ghost-mode/{userID}", h.handleGhostMode)
	r.Post("/presence/{userID}", h.handleUpdatePresence)
	r.Get("/presence/group/{groupID}", h.handleGroupPresence)
}

func (h *Handler) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Accuracy  float64  `json:"accuracy"`
		GhostMode bool     `json:"ghost_mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		utils.RespondError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	err := h.svc.UpdateLocation(r.Context(), userID, *payload.Latitude, *payload.Longitude, payload.Accuracy, payload.GhostMode)
	if err != nil {
		log.WithError(err).WithField("user", userID).Error("failed to update location")
		utils.RespondError(w, http.StatusInternalServerError, "failed to update location")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Location updated",
	})
}

func (h *Handler) handleGroupLocations(w http.ResponseWriter, r *http.Request) {
	excludeUser := r.URL.Query().Get("exclude_user")

	locations, err := h.svc.GroupLocations(r.Context(), excludeUser)
	if err != nil {
		log.WithError(err).Error("failed to read group locations")
		utils.RespondError(w, http.StatusInternalServerError, "failed to read group locations")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"locations": locations})
}

func (h *Handler) handleGhostMode(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var payload struct {
		GhostMode *bool `json:"ghost_mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.GhostMode == nil {
		utils.RespondError(w, http.StatusBadRequest, "ghost_mode is required")
		return
	}

	if err := h.svc.SetGhostMode(r.Context(), userID, *payload.GhostMode); err != nil {
		log.WithError(err).WithField("user", userID).Error("failed to set ghost mode")
		utils.RespondError(w, http.StatusInternalServerError, "failed to set ghost mode")
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.Broadcast(map[string]interface{}{
			"type":       "ghost_mode_update",
			"user_id":    userID,
			"ghost_mode": *payload.GhostMode,
		})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"ghost_mode": *payload.GhostMode,
	})
}

func (h *Handler) handleUpdatePresence(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var payload struct {
		Online *bool `json:"online"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Online == nil {
		utils.RespondError(w, http.StatusBadRequest, "online is required")
		return
	}

	if err := h.svc.UpdatePresence(r.Context(), userID, *payload.Online); err != nil {
		log.WithError(err).WithField("user", userID).Error("failed to update presence")
		utils.RespondError(w, http.StatusInternalServerError, "failed to update presence")
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.Broadcast(map[string]interface{}{
			"type":    "presence_update",
			"user_id": userID,
			"online":  *payload.Online,
		})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"online": *payload.Online,
	})
}

func (h *Handler) handleGroupPresence(w http.ResponseWriter, r *http.Request) {
	presence, err := h.svc.PresenceStatus(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to read presence")
		utils.RespondError(w, http.StatusInternalServerError, "failed to read presence")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"presence": presence})
}
