package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/oksasatya/go-bank-accounts/internal/application"
	"github.com/oksasatya/go-bank-accounts/internal/domain/entity"
	repo "github.com/oksasatya/go-bank-accounts/internal/domain/repository"
	"github.com/oksasatya/go-bank-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-bank-accounts/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type memoryRepo struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*entity.BankAccount
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{rows: map[string]*entity.BankAccount{}} }

func (m *memoryRepo) Create(_ context.Context, b *entity.BankAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	b.ID = "acc-" + strconv.Itoa(m.seq)
	m.rows[b.ID] = b
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*entity.BankAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return b, nil
}

func (m *memoryRepo) ListByUser(_ context.Context, userID string) ([]*entity.BankAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.BankAccount
	for _, b := range m.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newRouter(r repo.BankAccountRepository, userID string) *gin.Engine {
	h := NewBankAccountHandler(app.NewService(r, nil, nil, "", nil, "", nil, nil), nil)
	e := gin.New()
	api := e.Group("/api", func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, userID)
		c.Next()
	})
	api.POST("/bank-accounts", h.Create)
	api.POST("/bank-accounts/validate", h.Validate)
	api.GET("/bank-accounts", h.List)
	api.GET("/bank-accounts/search", h.Search)
	api.GET("/bank-accounts/:id", h.Get)
	api.DELETE("/bank-accounts/:id", h.Delete)
	api.POST("/bank-accounts/export", h.Export)
	return e
}

func do(t *testing.T, e *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestCreate_ReturnsMaskedView(t *testing.T) {
	e := newRouter(newMemoryRepo(), "user-1")
	w, env := do(t, e, http.MethodPost, "/api/bank-accounts", map[string]string{
		"country": "ET", "bank_code": "CBETETAA", "account_number": "1000123456789",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var view map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "acc-1", view["id"])
	assert.Equal(t, "etb", view["currency"])
	assert.Equal(t, "CBETETAA", view["routing_number"])
	assert.Equal(t, "******6789", view["account_number"])
	assert.Equal(t, "ET", view["bank_account_type"])
	assert.NotContains(t, w.Body.String(), "1000123456789")
}

func TestCreate_InvalidRecordIs422WithBaseErrors(t *testing.T) {
	e := newRouter(newMemoryRepo(), "user-1")
	w, env := do(t, e, http.MethodPost, "/api/bank-accounts", map[string]string{
		"country": "ET", "bank_code": "SHORT", "account_number": "1000123456789",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Success)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(env.Error, &errs))
	assert.Equal(t, []string{"The bank code is invalid."}, errs["base"])
}

func TestCreate_PayloadErrors(t *testing.T) {
	e := newRouter(newMemoryRepo(), "user-1")

	w, env := do(t, e, http.MethodPost, "/api/bank-accounts", map[string]string{"country": "ET"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &details))
	assert.Equal(t, "is required", details["bank_code"])
	assert.Equal(t, "is required", details["account_number"])

	w, env = do(t, e, http.MethodPost, "/api/bank-accounts", map[string]string{
		"country": "ZZ", "bank_code": "CBETETAA", "account_number": "1000123456789",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid payload", env.Message)
	require.NoError(t, json.Unmarshal(env.Error, &details))
	assert.Equal(t, "is not a supported bank account country", details["country"])
}

func TestValidate_ReportsBothErrorsWithoutStoring(t *testing.T) {
	r := newMemoryRepo()
	e := newRouter(r, "user-1")
	w, env := do(t, e, http.MethodPost, "/api/bank-accounts/validate", map[string]string{
		"country": "et", "bank_code": "AB-12", "account_number": "123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Valid  bool                `json:"valid"`
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.False(t, data.Valid)
	assert.Equal(t, []string{"The bank code is invalid.", "The account number is invalid."}, data.Errors["base"])
	assert.Empty(t, r.rows)
}

func TestGetListDelete(t *testing.T) {
	r := newMemoryRepo()
	e := newRouter(r, "user-1")
	_, _ = do(t, e, http.MethodPost, "/api/bank-accounts", map[string]string{
		"country": "ET", "bank_code": "AWINETAA", "account_number": "ABCDEFGH12345",
	})

	w, env := do(t, e, http.MethodGet, "/api/bank-accounts/acc-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"account_number":"******2345"`)

	w, env = do(t, e, http.MethodGet, "/api/bank-accounts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &views))
	assert.Len(t, views, 1)

	other := newRouter(r, "user-2")
	w, _ = do(t, other, http.MethodGet, "/api/bank-accounts/acc-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, other, http.MethodDelete, "/api/bank-accounts/acc-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, e, http.MethodDelete, "/api/bank-accounts/acc-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, e, http.MethodGet, "/api/bank-accounts/acc-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchAndExportWithoutBackends(t *testing.T) {
	e := newRouter(newMemoryRepo(), "user-1")

	w, _ := do(t, e, http.MethodGet, "/api/bank-accounts/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, e, http.MethodGet, "/api/bank-accounts/search?q=%20%20", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, e, http.MethodGet, "/api/bank-accounts/search?q=CBE", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)

	w, _ = do(t, e, http.MethodPost, "/api/bank-accounts/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
