package auth

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stellar-admin/stellar-admin/internal/observability"
	"github.com/stellar-admin/stellar-admin/internal/platform/httpx"
	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// Handler wires the authentication endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	captcha  *CaptchaStore
	validate *validator.Validate
	metrics  *observability.Metrics
}

// NewHandler constructs a Handler. metrics may be nil.
func NewHandler(logger *slog.Logger, service *Service, captcha *CaptchaStore, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		captcha:  captcha,
		validate: validator.New(),
		metrics:  metrics,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginWithCaptchaRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	CaptchaID  string `json:"captchaId" validate:"required"`
	VerifyCode string `json:"verifyCode" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// CaptchaImage returns a fresh image challenge.
func (h *Handler) CaptchaImage(w http.ResponseWriter, r *http.Request) {
	width, _ := strconv.Atoi(r.URL.Query().Get("width"))
	height, _ := strconv.Atoi(r.URL.Query().Get("height"))
	captcha, err := h.captcha.Create(r.Context(), width, height)
	if err != nil {
		h.logger.Error("create captcha", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, captcha)
}

// Login authenticates username/password and returns a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, shared.ErrInvalidParams)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, shared.ErrInvalidParams)
		return
	}
	h.login(w, r, req.Username, req.Password)
}

// LoginWithCaptcha checks the image challenge before authenticating.
func (h *Handler) LoginWithCaptcha(w http.ResponseWriter, r *http.Request) {
	var req loginWithCaptchaRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, shared.ErrInvalidParams)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, shared.ErrInvalidParams)
		return
	}
	if err := h.captcha.Check(r.Context(), req.CaptchaID, req.VerifyCode); err != nil {
		h.observeLogin("captcha_failed")
		httpx.Error(w, err)
		return
	}
	h.login(w, r, req.Username, req.Password)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, username, password string) {
	token, err := h.service.Login(r.Context(), username, password, clientIP(r), r.UserAgent())
	if err != nil {
		if _, ok := shared.AsAPIError(err); !ok {
			h.logger.Error("login", slog.String("username", username), slog.Any("error", err))
			h.observeLogin("error")
		} else {
			h.observeLogin("rejected")
		}
		httpx.Error(w, err)
		return
	}
	h.observeLogin("success")
	httpx.OK(w, loginResponse{Token: token})
}

// Logout revokes the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.SubjectFromContext(r.Context())
	if !ok {
		httpx.Error(w, shared.ErrNoAuthorization)
		return
	}
	if err := h.service.Logout(r.Context(), userID); err != nil {
		h.logger.Error("logout", slog.Int64("user_id", userID), slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.OKMessage(w, nil, "logged out")
}

// UserInfo returns the authenticated subject's profile.
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.SubjectFromContext(r.Context())
	if !ok {
		httpx.Error(w, shared.ErrNoAuthorization)
		return
	}
	info, err := h.service.UserInfo(r.Context(), userID, clientIP(r))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, info)
}

func (h *Handler) observeLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveLogin(outcome)
	}
}

// clientIP trusts middleware.RealIP to have rewritten RemoteAddr already.
func clientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return strings.TrimPrefix(addr, "::ffff:")
}
