package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizdir/bizdir/internal/auth"
	"github.com/bizdir/bizdir/internal/business"
	"github.com/bizdir/bizdir/internal/documents"
	"github.com/bizdir/bizdir/internal/shared"
)

// fakeStore backs all three repositories in-memory so the tests can
// exercise the full router, including the cascade from deleting a
// business to its document transactions.
type fakeStore struct {
	nextBusinessID int64
	nextDocumentID int64
	businesses     map[int64]business.Business
	transactions   map[int64]documents.DocumentTransaction
	admins         map[string]*auth.Admin
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextBusinessID: 1,
		nextDocumentID: 1,
		businesses:     map[int64]business.Business{},
		transactions:   map[int64]documents.DocumentTransaction{},
		admins:         map[string]*auth.Admin{},
	}
}

type fakeBusinessRepo struct{ store *fakeStore }

func (r *fakeBusinessRepo) Create(_ context.Context, b business.Business) (*business.Business, error) {
	for _, existing := range r.store.businesses {
		if existing.TaxID == b.TaxID {
			return nil, business.ErrDuplicateTaxID
		}
	}
	b.ID = r.store.nextBusinessID
	r.store.nextBusinessID++
	b.CreatedAt = time.Now()
	if b.CustomFields == nil {
		b.CustomFields = map[string]string{}
	}
	r.store.businesses[b.ID] = b
	return &b, nil
}

func (r *fakeBusinessRepo) Get(_ context.Context, id int64) (*business.Business, error) {
	b, ok := r.store.businesses[id]
	if !ok {
		return nil, business.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBusinessRepo) sorted() []business.Business {
	out := make([]business.Business, 0, len(r.store.businesses))
	for _, b := range r.store.businesses {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *fakeBusinessRepo) List(_ context.Context, p shared.Pagination) ([]business.Business, int, error) {
	all := r.sorted()
	total := len(all)
	if p.Offset >= len(all) {
		return []business.Business{}, total, nil
	}
	end := p.Offset + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[p.Offset:end], total, nil
}

func (r *fakeBusinessRepo) All(_ context.Context) ([]business.Business, error) {
	return r.sorted(), nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, id int64, updates map[string]any) (*business.Business, error) {
	b, ok := r.store.businesses[id]
	if !ok {
		return nil, business.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		b.Name = name
	}
	if taxID, ok := updates["taxId"].(string); ok {
		b.TaxID = taxID
	}
	r.store.businesses[id] = b
	return &b, nil
}

func (r *fakeBusinessRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.store.businesses[id]; !ok {
		return false, nil
	}
	delete(r.store.businesses, id)
	for txID, tx := range r.store.transactions {
		if tx.BusinessID == id {
			delete(r.store.transactions, txID)
		}
	}
	return true, nil
}

func (r *fakeBusinessRepo) Search(_ context.Context, field, value string) ([]business.Business, error) {
	out := []business.Business{}
	if field != "name" {
		return out, nil
	}
	for _, b := range r.store.businesses {
		if b.Name == value {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeDocumentsRepo struct{ store *fakeStore }

func (r *fakeDocumentsRepo) Create(_ context.Context, tx documents.DocumentTransaction) (*documents.DocumentTransaction, error) {
	if _, ok := r.store.businesses[tx.BusinessID]; !ok {
		return nil, documents.ErrBusinessMissing
	}
	tx.ID = r.store.nextDocumentID
	r.store.nextDocumentID++
	tx.CreatedAt = time.Now()
	r.store.transactions[tx.ID] = tx
	return &tx, nil
}

func (r *fakeDocumentsRepo) ListByBusiness(_ context.Context, businessID int64) ([]documents.DocumentTransaction, error) {
	out := []documents.DocumentTransaction{}
	for _, tx := range r.store.transactions {
		if tx.BusinessID == businessID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})
	return out, nil
}

func (r *fakeDocumentsRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.store.transactions[id]; !ok {
		return false, nil
	}
	delete(r.store.transactions, id)
	return true, nil
}

type fakeAuthRepo struct{ store *fakeStore }

func (r *fakeAuthRepo) FindByUsername(_ context.Context, username string) (*auth.Admin, error) {
	admin, ok := r.store.admins[username]
	if !ok {
		return nil, auth.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeAuthRepo) UpdatePassword(_ context.Context, username, password string) (bool, error) {
	admin, ok := r.store.admins[username]
	if !ok {
		return false, nil
	}
	admin.Password = password
	return true, nil
}

func newTestAPI(t *testing.T) (http.Handler, *fakeStore) {
	t.Helper()
	store := newFakeStore()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	store.admins["admin"] = &auth.Admin{ID: 1, Username: "admin", Password: string(hashed), CreatedAt: time.Now()}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewMemoryTokenStore(time.Hour)
	t.Cleanup(tokens.Close)
	guard := auth.Middleware{Tokens: tokens, Logger: logger}

	cfg := &Config{AppEnv: "development", AppRequestTimeout: 30 * time.Second, DeletePassword: "0102"}

	router := NewRouter(RouterParams{
		Logger:      logger,
		Config:      cfg,
		AuthHandler: auth.NewHandler(logger, auth.NewService(&fakeAuthRepo{store: store}), tokens),
		BusinessHandler: business.NewHandler(logger,
			business.NewService(&fakeBusinessRepo{store: store}),
			cfg.DeletePassword,
			guard.Require("Chưa đăng nhập")),
		DocumentsHandler: documents.NewHandler(logger,
			documents.NewService(&fakeDocumentsRepo{store: store}),
			guard.Require("Cần quyền admin để xóa")),
	})
	return router, store
}

func apiDo(t *testing.T, router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestHealthz(t *testing.T) {
	router, _ := newTestAPI(t)

	res := apiDo(t, router, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"status":"ok"`)
}

func TestBusinessLifecycleCascadesDocuments(t *testing.T) {
	router, store := newTestAPI(t)

	res := apiDo(t, router, http.MethodPost, "/api/businesses", map[string]any{
		"name":  "Công ty Long Phát",
		"taxId": "0312345678",
	}, "")
	require.Equal(t, http.StatusCreated, res.Code)

	var created business.Business
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))

	res = apiDo(t, router, http.MethodPost, "/api/businesses/1/documents", map[string]any{
		"documentType":    "Giấy phép kinh doanh",
		"transactionType": "giao",
		"handledBy":       "Nguyễn Văn A",
	}, "")
	require.Equal(t, http.StatusCreated, res.Code)

	res = apiDo(t, router, http.MethodGet, "/api/businesses/1/documents", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	var history []documents.DocumentTransaction
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &history))
	require.Len(t, history, 1)

	res = apiDo(t, router, http.MethodDelete, "/api/businesses/1", map[string]any{"password": "0102"}, "")
	require.Equal(t, http.StatusOK, res.Code)

	assert.Empty(t, store.businesses)
	assert.Empty(t, store.transactions)
}

func TestUpdateGatedBehindLogin(t *testing.T) {
	router, _ := newTestAPI(t)

	res := apiDo(t, router, http.MethodPost, "/api/businesses", map[string]any{
		"name":  "Công ty Long Phát",
		"taxId": "0312345678",
	}, "")
	require.Equal(t, http.StatusCreated, res.Code)

	res = apiDo(t, router, http.MethodPut, "/api/businesses/1", map[string]any{"name": "Đổi tên"}, "")
	require.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "Chưa đăng nhập")

	res = apiDo(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "admin",
		"password": "secret",
	}, "")
	require.Equal(t, http.StatusOK, res.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	res = apiDo(t, router, http.MethodPut, "/api/businesses/1", map[string]any{"name": "Đổi tên"}, login.Token)
	require.Equal(t, http.StatusOK, res.Code)

	var updated business.Business
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
	assert.Equal(t, "Đổi tên", updated.Name)

	res = apiDo(t, router, http.MethodPost, "/api/auth/logout", nil, login.Token)
	require.Equal(t, http.StatusOK, res.Code)

	res = apiDo(t, router, http.MethodPut, "/api/businesses/1", map[string]any{"name": "Lần nữa"}, login.Token)
	require.Equal(t, http.StatusUnauthorized, res.Code)
}
