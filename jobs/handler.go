package jobs

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"

	"github.com/bizdir/bizdir/internal/auth"
	"github.com/bizdir/bizdir/internal/platform/httpx"
)

// Handler exposes on-demand job enqueueing to admins.
type Handler struct {
	client *asynq.Client
	logger *slog.Logger
	admin  func(http.Handler) http.Handler
}

// NewHandler constructs a Handler.
func NewHandler(client *asynq.Client, logger *slog.Logger, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{client: client, logger: logger, admin: admin}
}

// MountRoutes registers the job routes; all of them are admin-gated.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.admin)
		r.Post("/export", h.EnqueueExport)
	})
}

// EnqueueExport queues a directory export and returns 202 immediately.
func (h *Handler) EnqueueExport(w http.ResponseWriter, r *http.Request) {
	requestedBy := "admin"
	if identity := auth.IdentityFromContext(r.Context()); identity != nil {
		requestedBy = identity.Username
	}

	task, err := NewDirectoryExportTask(DirectoryExportPayload{RequestedBy: requestedBy})
	if err != nil {
		h.logger.Error("build export task", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi hệ thống")
		return
	}
	info, err := h.client.EnqueueContext(r.Context(), task, asynq.Queue(QueueDefault))
	if err != nil {
		h.logger.Error("enqueue export task", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi xếp hàng xuất dữ liệu")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{"success": true, "taskId": info.ID})
}
