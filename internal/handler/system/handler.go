package system

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	statusmodel "github.com/barefootbuddy/backend/internal/model/status"
	"github.com/barefootbuddy/backend/pkg/utils"
)

// Store persists client status checks.
type Store interface {
	InsertStatusCheck(ctx context.Context, check statusmodel.Check) error
	ListStatusChecks(ctx context.Context) ([]statusmodel.Check, error)
}

// Handler exposes the root, health and status-check routes.
type Handler struct {
	store Store
}

// New creates the system handler.
func New(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the system routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)
	r.Post("/status", h.handleCreateStatus)
	r.Get("/status", h.handleListStatus)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Barefoot Buddy API",
		"status":  "active",
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ClientName string `json:"client_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ClientName == "" {
		utils.RespondError(w, http.StatusBadRequest, "client_name is required")
		return
	}

	check := statusmodel.Check{
		ID:         uuid.NewString(),
		ClientName: payload.ClientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.store.InsertStatusCheck(r.Context(), check); err != nil {
		log.WithError(err).Error("failed to insert status check")
		utils.RespondError(w, http.StatusInternalServerError, "failed to record status check")
		return
	}

	utils.RespondJSON(w, http.StatusOK, check)
}

func (h *Handler) handleListStatus(w http.ResponseWriter, r *http.Request) {
	checks, err := h.store.ListStatusChecks(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list status checks")
		utils.RespondError(w, http.StatusInternalServerError, "failed to list status checks")
		return
	}

	utils.RespondJSON(w, http.StatusOK, checks)
}
