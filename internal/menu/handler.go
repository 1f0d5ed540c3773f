package menu

import (
	"log/slog"
	"net/http"

	"github.com/stellar-admin/stellar-admin/internal/platform/httpx"
	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// Handler wires the menu endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// List returns the management tree for administrative listing.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.ManagementTree(r.Context())
	if err != nil {
		h.logger.Error("build management tree", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, tree)
}

// Routes returns the navigable route tree for the authenticated subject.
func (h *Handler) Routes(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.SubjectFromContext(r.Context())
	if !ok {
		httpx.Error(w, shared.ErrNoAuthorization)
		return
	}
	tree, err := h.service.RoutesForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("build route tree", slog.Int64("user_id", userID), slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, tree)
}
