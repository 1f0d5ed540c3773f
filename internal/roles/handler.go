package roles

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/stellar-admin/stellar-admin/internal/platform/httpx"
	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// Handler wires the role endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// List returns a filtered, paginated role listing.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roleID, _ := strconv.ParseInt(q.Get("roleId"), 10, 64)
	pageNum, _ := strconv.Atoi(q.Get("pageNum"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	result, err := h.service.List(r.Context(), ListFilters{
		RoleID:   roleID,
		Name:     q.Get("roleName"),
		Key:      q.Get("roleKey"),
		Status:   q.Get("status"),
		PageNum:  pageNum,
		PageSize: pageSize,
	})
	if err != nil {
		h.logger.Error("list roles", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, result)
}

type createRoleRequest struct {
	Name   string `json:"roleName" validate:"required,max=64"`
	Key    string `json:"roleKey" validate:"required,max=64"`
	Rank   int    `json:"roleSort"`
	Remark string `json:"remark" validate:"max=255"`
}

// Create inserts a new role.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, shared.ErrInvalidParams)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, shared.ErrInvalidParams)
		return
	}
	role, err := h.service.Create(r.Context(), req.Name, req.Key, req.Rank, req.Remark)
	if err != nil {
		if _, ok := shared.AsAPIError(err); !ok {
			h.logger.Error("create role", slog.Any("error", err))
		}
		httpx.Error(w, err)
		return
	}
	httpx.OKMessage(w, role, "created")
}
