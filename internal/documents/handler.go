package documents

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bizdir/bizdir/internal/platform/httpx"
)

// Handler wires the document transaction HTTP endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
	admin     func(http.Handler) http.Handler
}

func NewHandler(logger *slog.Logger, service *Service, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
		admin:     admin,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessId"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID doanh nghiệp không hợp lệ")
		return
	}

	var req CreateDocumentTransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}

	created, err := h.service.Create(r.Context(), businessID, req)
	if err != nil {
		if errors.Is(err, ErrBusinessMissing) {
			httpx.Message(w, http.StatusBadRequest, "ID doanh nghiệp không hợp lệ")
			return
		}
		h.logger.Error("create document transaction", slog.Any("error", err), slog.Int64("businessId", businessID))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi tạo giao dịch hồ sơ")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) ListByBusiness(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessId"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID doanh nghiệp không hợp lệ")
		return
	}

	transactions, err := h.service.ListByBusiness(r.Context(), businessID)
	if err != nil {
		h.logger.Error("list document transactions", slog.Any("error", err), slog.Int64("businessId", businessID))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi tải lịch sử giao nhận hồ sơ")
		return
	}
	httpx.JSON(w, http.StatusOK, transactions)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID không hợp lệ")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete document transaction", slog.Any("error", err), slog.Int64("id", id))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi xóa giao dịch hồ sơ")
		return
	}
	if !deleted {
		httpx.Message(w, http.StatusNotFound, "Không tìm thấy giao dịch hồ sơ")
		return
	}
	httpx.Message(w, http.StatusOK, "Xóa giao dịch hồ sơ thành công")
}
