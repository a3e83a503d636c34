package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bizdir/bizdir/internal/platform/httpx"
)

// Handler wires HTTP endpoints for admin authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	tokens    TokenStore
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, tokens TokenStore) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		tokens:    tokens,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)

	guard := Middleware{Tokens: h.tokens, Logger: h.logger}
	r.Group(func(r chi.Router) {
		r.Use(guard.Require("Chưa đăng nhập"))
		r.Post("/change-password", h.ChangePassword)
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	Admin   AdminSummary `json:"admin"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ValidationError(w, "Dữ liệu đăng nhập không hợp lệ", httpx.FieldErrors(err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationError(w, "Dữ liệu đăng nhập không hợp lệ", httpx.FieldErrors(err))
		return
	}

	admin, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.Message(w, http.StatusUnauthorized, "Tài khoản hoặc mật khẩu không đúng")
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi đăng nhập")
		return
	}

	token, err := h.tokens.Issue(r.Context(), Identity{AdminID: admin.ID, Username: admin.Username})
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi đăng nhập")
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		Admin:   AdminSummary{ID: admin.ID, Username: admin.Username},
	})
}

// Logout always succeeds, even with an invalid or missing token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := BearerToken(r); token != "" {
		if err := h.tokens.Revoke(r.Context(), token); err != nil {
			h.logger.Warn("revoke token", slog.Any("error", err))
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

type meResponse struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	Admin           *AdminSummary `json:"admin,omitempty"`
}

// Me reports the authentication state of the presented token with 200
// in both cases.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		httpx.JSON(w, http.StatusOK, meResponse{IsAuthenticated: false})
		return
	}
	identity, err := h.tokens.Resolve(r.Context(), token)
	if err != nil {
		h.logger.Error("resolve token", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi hệ thống")
		return
	}
	if identity == nil {
		httpx.JSON(w, http.StatusOK, meResponse{IsAuthenticated: false})
		return
	}
	httpx.JSON(w, http.StatusOK, meResponse{
		IsAuthenticated: true,
		Admin:           &AdminSummary{ID: identity.AdminID, Username: identity.Username},
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=1"`
	NewPassword     string `json:"newPassword" validate:"required,min=1"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		httpx.Message(w, http.StatusUnauthorized, "Chưa đăng nhập")
		return
	}

	var req changePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}

	changed, err := h.service.ChangePassword(r.Context(), identity.Username, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.logger.Error("change password", slog.Any("error", err), slog.String("username", identity.Username))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi đổi mật khẩu")
		return
	}
	if !changed {
		httpx.Message(w, http.StatusBadRequest, "Mật khẩu hiện tại không đúng")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Đổi mật khẩu thành công"})
}
