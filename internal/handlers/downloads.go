package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"statehouse_site/internal/content"
	"statehouse_site/internal/models"
	"statehouse_site/internal/services"
)

var validate = validator.New()

// DownloadStore is the downloads persistence used by the REST routes.
type DownloadStore interface {
	List(ctx context.Context) ([]models.Download, error)
	Get(ctx context.Context, id string) (*models.Download, error)
	Create(ctx context.Context, d *models.Download) error
	Update(ctx context.Context, id string, changes models.Download) (*models.Download, error)
	Delete(ctx context.Context, id string) (*models.Download, error)
}

// DownloadHandler serves the five CRUD routes under /api/downloads with the
// CMS's {data, meta} envelope.
type DownloadHandler struct {
	store DownloadStore
}

// NewDownloadHandler accepts a nil store; every route then answers 503.
func NewDownloadHandler(store DownloadStore) *DownloadHandler {
	return &DownloadHandler{store: store}
}

type downloadPayload struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	FileURL     string `json:"fileUrl" validate:"required,uri,max=2048"`
	Order       *int   `json:"order" validate:"omitempty,min=0"`
}

type downloadRequest struct {
	Data downloadPayload `json:"data"`
}

func (p downloadPayload) model() models.Download {
	d := models.Download{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		FileURL:     strings.TrimSpace(p.FileURL),
		Order:       content.DefaultOrder,
	}
	if p.Order != nil {
		d.Order = *p.Order
	}
	return d
}

type listMeta struct {
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

func (h *DownloadHandler) available() error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Downloads store is not configured")
	}
	return nil
}

func (h *DownloadHandler) bind(c echo.Context) (models.Download, error) {
	var req downloadRequest
	if err := c.Bind(&req); err != nil {
		return models.Download{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req.Data); err != nil {
		return models.Download{}, echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
	}
	return req.Data.model(), nil
}

// validationMessage lists the failing fields, e.g. "title is required".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "uri":
			msgs = append(msgs, field+" must be a URL or absolute path")
		default:
			msgs = append(msgs, field+" is invalid ("+fe.Tag()+")")
		}
	}
	return strings.Join(msgs, "; ")
}

func storeError(err error) error {
	if errors.Is(err, services.ErrDownloadNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Download not found")
	}
	return err
}

// List handles GET /api/downloads
func (h *DownloadHandler) List(c echo.Context) error {
	if err := h.available(); err != nil {
		return err
	}
	docs, err := h.store.List(c.Request().Context())
	if err != nil {
		return err
	}
	pageCount := 0
	if len(docs) > 0 {
		pageCount = 1
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": docs,
		"meta": listMeta{Pagination: pagination{Page: 1, PageSize: len(docs), PageCount: pageCount, Total: len(docs)}},
	})
}

// Get handles GET /api/downloads/:id
func (h *DownloadHandler) Get(c echo.Context) error {
	if err := h.available(); err != nil {
		return err
	}
	d, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": d})
}

// Create handles POST /api/downloads
func (h *DownloadHandler) Create(c echo.Context) error {
	if err := h.available(); err != nil {
		return err
	}
	d, err := h.bind(c)
	if err != nil {
		return err
	}
	if err := h.store.Create(c.Request().Context(), &d); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"data": d})
}

// Update handles PUT /api/downloads/:id
func (h *DownloadHandler) Update(c echo.Context) error {
	if err := h.available(); err != nil {
		return err
	}
	changes, err := h.bind(c)
	if err != nil {
		return err
	}
	d, err := h.store.Update(c.Request().Context(), c.Param("id"), changes)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": d})
}

// Delete handles DELETE /api/downloads/:id
func (h *DownloadHandler) Delete(c echo.Context) error {
	if err := h.available(); err != nil {
		return err
	}
	d, err := h.store.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": d})
}
