package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statehouse_site/internal/models"
	"statehouse_site/internal/services"
)

type memoryDownloads struct {
	mu   sync.Mutex
	next uint
	docs map[string]*models.Download
}

func newMemoryDownloads() *memoryDownloads {
	return &memoryDownloads{docs: map[string]*models.Download{}}
}

func (m *memoryDownloads) List(context.Context) ([]models.Download, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Download, 0, len(m.docs))
	for i := uint(1); i <= m.next; i++ {
		if d, ok := m.docs[strconv.Itoa(int(i))]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memoryDownloads) Get(_ context.Context, id string) (*models.Download, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, services.ErrDownloadNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memoryDownloads) Create(_ context.Context, d *models.Download) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	d.ID = m.next
	d.DocumentID = "doc-" + strconv.Itoa(int(d.ID))
	cp := *d
	m.docs[strconv.Itoa(int(d.ID))] = &cp
	return nil
}

func (m *memoryDownloads) Update(ctx context.Context, id string, changes models.Download) (*models.Download, error) {
	m.mu.Lock()
	d, ok := m.docs[id]
	if ok {
		d.Title, d.Description, d.FileURL, d.Order = changes.Title, changes.Description, changes.FileURL, changes.Order
	}
	m.mu.Unlock()
	if !ok {
		return nil, services.ErrDownloadNotFound
	}
	return m.Get(ctx, id)
}

func (m *memoryDownloads) Delete(ctx context.Context, id string) (*models.Download, error) {
	d, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	delete(m.docs, id)
	m.mu.Unlock()
	return d, nil
}

func newDownloadServer(store DownloadStore) *echo.Echo {
	e := echo.New()
	h := NewDownloadHandler(store)
	api := e.Group("/api/downloads")
	api.GET("", h.List)
	api.GET("/:id", h.Get)
	api.POST("", h.Create)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type downloadResponse struct {
	Data models.Download `json:"data"`
}

func TestDownloadHandler_CRUD(t *testing.T) {
	e := newDownloadServer(newMemoryDownloads())

	rec := do(e, http.MethodPost, "/api/downloads", `{"data":{"title":" Fees Structure ","fileUrl":"/pdfs/fees-structure.pdf"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created downloadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Fees Structure", created.Data.Title)
	assert.Equal(t, 999, created.Data.Order)

	rec = do(e, http.MethodGet, "/api/downloads", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []models.Download `json:"data"`
		Meta listMeta          `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Meta.Pagination.Total)

	rec = do(e, http.MethodPut, "/api/downloads/1", `{"data":{"title":"Fees 2025","fileUrl":"https://example.org/fees.pdf","order":1}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated downloadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Fees 2025", updated.Data.Title)
	assert.Equal(t, 1, updated.Data.Order)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/downloads/1", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodDelete, "/api/downloads/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/downloads/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPut, "/api/downloads/9", `{"data":{"title":"x","fileUrl":"/x.pdf"}}`).Code)
}

func TestDownloadHandler_Validation(t *testing.T) {
	e := newDownloadServer(newMemoryDownloads())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing title", `{"data":{"fileUrl":"/pdfs/a.pdf"}}`, "title is required"},
		{"missing file", `{"data":{"title":"A"}}`, "fileURL is required"},
		{"bad url", `{"data":{"title":"A","fileUrl":"not a url"}}`, "fileURL must be a URL or absolute path"},
		{"negative order", `{"data":{"title":"A","fileUrl":"/a.pdf","order":-1}}`, "order is invalid (min)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/downloads", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/api/downloads", `{"data":`).Code)
}

func TestDownloadHandler_NoStore(t *testing.T) {
	e := newDownloadServer(nil)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := do(e, method, "/api/downloads", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	}
}
