package business

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bizdir/bizdir/internal/platform/httpx"
)

// Handler wires the business directory HTTP endpoints.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	validator      *validator.Validate
	deletePassword string
	admin          func(http.Handler) http.Handler
}

// NewHandler constructs a Handler. admin is the middleware gating the
// admin-only routes; deletePassword is the shared static password the
// delete endpoint checks.
func NewHandler(logger *slog.Logger, service *Service, deletePassword string, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		validator:      validator.New(),
		deletePassword: deletePassword,
		admin:          admin,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	businesses, total, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("list businesses", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi tải danh sách doanh nghiệp")
		return
	}
	httpx.JSON(w, http.StatusOK, ListBusinessesResponse{Businesses: businesses, Total: total})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID không hợp lệ")
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Message(w, http.StatusNotFound, "Không tìm thấy doanh nghiệp")
			return
		}
		h.logger.Error("get business", slog.Any("error", err), slog.Int64("id", id))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi tải thông tin doanh nghiệp")
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBusinessRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateTaxID) {
			httpx.Message(w, http.StatusBadRequest, "Mã số thuế đã tồn tại")
			return
		}
		h.logger.Error("create business", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi tạo doanh nghiệp mới")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID không hợp lệ")
		return
	}

	var req UpdateBusinessRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}

	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.Message(w, http.StatusNotFound, "Không tìm thấy doanh nghiệp")
		case errors.Is(err, ErrDuplicateTaxID):
			httpx.Message(w, http.StatusBadRequest, "Mã số thuế đã tồn tại")
		default:
			h.logger.Error("update business", slog.Any("error", err), slog.Int64("id", id))
			httpx.Message(w, http.StatusInternalServerError, "Lỗi khi cập nhật doanh nghiệp")
		}
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchBusinessRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ValidationError(w, "Dữ liệu tìm kiếm không hợp lệ", httpx.FieldErrors(err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationError(w, "Dữ liệu tìm kiếm không hợp lệ", httpx.FieldErrors(err))
		return
	}

	businesses, err := h.service.Search(r.Context(), req)
	if err != nil {
		h.logger.Error("search businesses", slog.Any("error", err), slog.String("field", req.Field))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi tìm kiếm doanh nghiệp")
		return
	}
	httpx.JSON(w, http.StatusOK, businesses)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID không hợp lệ")
		return
	}

	var req DeleteBusinessRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationError(w, "Dữ liệu không hợp lệ", httpx.FieldErrors(err))
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.deletePassword)) != 1 {
		httpx.Message(w, http.StatusForbidden, "Mật khẩu không đúng")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete business", slog.Any("error", err), slog.Int64("id", id))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi xóa doanh nghiệp")
		return
	}
	if !deleted {
		httpx.Message(w, http.StatusNotFound, "Không tìm thấy doanh nghiệp")
		return
	}
	httpx.Message(w, http.StatusOK, "Xóa doanh nghiệp thành công")
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportXLSX(r.Context())
	if err != nil {
		h.logger.Error("export businesses", slog.Any("error", err))
		httpx.Message(w, http.StatusInternalServerError, "Lỗi khi xuất danh sách doanh nghiệp")
		return
	}

	filename := fmt.Sprintf("businesses-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
