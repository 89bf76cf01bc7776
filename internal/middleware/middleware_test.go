package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"statehouse_site/internal/cms"
	"statehouse_site/internal/handlers"
	"statehouse_site/internal/site"
)

type pageRenderer struct {
	fail bool
	last handlers.PageData
}

func (r *pageRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	if r.fail {
		return errors.New("template broken")
	}
	r.last = data.(handlers.PageData)
	page := r.last.Data.(ErrorPage)
	_, err := fmt.Fprintf(w, "%s|%d|%s", name, page.Code, page.Message)
	return err
}

func serve(t *testing.T, renderer echo.Renderer, showDetail bool, path string, handlerErr error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = CustomErrorHandler(zap.NewNop(), "Statehouse", showDetail)
	e.GET(path, func(c echo.Context) error { return handlerErr })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCustomErrorHandler_Pages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"site not found", fmt.Errorf("album: %w", site.ErrNotFound), http.StatusNotFound, "The page you're looking for doesn't exist."},
		{"http error with message", echo.NewHTTPError(http.StatusBadRequest, "bad id"), http.StatusBadRequest, "bad id"},
		{"cms failure", &cms.FetchError{Class: cms.ClassTransport}, http.StatusBadGateway, "School content could not be loaded. Please try again shortly."},
		{"cms 404", &cms.FetchError{Class: cms.ClassStatus, Status: http.StatusNotFound}, http.StatusNotFound, "The page you're looking for doesn't exist."},
		{"other", errors.New("boom"), http.StatusInternalServerError, "Something went wrong. Please try again later."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &pageRenderer{}
			rec := serve(t, r, false, "/gallery/1", tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, fmt.Sprintf("error.html|%d|%s", tt.wantCode, tt.wantMsg), rec.Body.String())
			assert.Equal(t, "Statehouse", r.last.SiteName)
			assert.Empty(t, r.last.Data.(ErrorPage).Detail)
		})
	}
}

func TestCustomErrorHandler_Detail(t *testing.T) {
	r := &pageRenderer{}
	serve(t, r, true, "/staff", errors.New("connection refused"))

	assert.Equal(t, "connection refused", r.last.Data.(ErrorPage).Detail)
}

func TestCustomErrorHandler_FallsBackToText(t *testing.T) {
	rec := serve(t, &pageRenderer{fail: true}, false, "/about", site.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "The page you're looking for doesn't exist.", rec.Body.String())
}

func TestCustomErrorHandler_API(t *testing.T) {
	rec := serve(t, &pageRenderer{}, false, "/api/downloads", echo.NewHTTPError(http.StatusServiceUnavailable))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Data)
	assert.Equal(t, http.StatusServiceUnavailable, body.Error.Status)
	assert.Equal(t, "Service Unavailable", body.Error.Name)
}

func TestRequireToken(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{"disabled", "", "", http.StatusOK},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"wrong scheme", "s3cret", "Basic s3cret", http.StatusUnauthorized},
		{"wrong token", "s3cret", "Bearer nope", http.StatusUnauthorized},
		{"valid", "s3cret", "Bearer s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.POST("/api/downloads", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, RequireToken(tt.token))

			req := httptest.NewRequest(http.MethodPost, "/api/downloads", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger(zap.NewNop()))
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/about", func(c echo.Context) error { return c.String(http.StatusOK, "about") })

	for _, path := range []string{"/healthz", "/about"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestCustomErrorHandler_UnknownRoute(t *testing.T) {
	e := echo.New()
	r := &pageRenderer{}
	e.Renderer = r
	e.HTTPErrorHandler = CustomErrorHandler(zap.NewNop(), "Statehouse", false)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Page Not Found", r.last.Title)
}
