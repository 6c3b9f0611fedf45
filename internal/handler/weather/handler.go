package weather

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	weatherservice "github.com/barefootbuddy/backend/internal/service/weather"
	"github.com/barefootbuddy/backend/pkg/utils"
)

// Handler exposes the weather card endpoint.
type Handler struct {
	svc *weatherservice.Service
}

// New creates the weather handler.
func New(svc *weatherservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the weather route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/weather", h.handleCurrent)
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.Current(r.Context()))
}
