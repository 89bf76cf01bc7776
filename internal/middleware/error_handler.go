package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"statehouse_site/internal/cms"
	"statehouse_site/internal/handlers"
	"statehouse_site/internal/site"
)

// ErrorPage is the page-specific data of error.html.
type ErrorPage struct {
	Code    int
	Title   string
	Message string
	Detail  string
}

// APIError mirrors the CMS error body: {"data": null, "error": {...}}.
type APIError struct {
	Data  any          `json:"data"`
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// CustomErrorHandler renders error.html for pages and a JSON body for /api
// routes. Detail (the underlying error) is only shown when showDetail is set.
func CustomErrorHandler(log *zap.Logger, siteName string, showDetail bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		page := classify(err)
		if showDetail {
			page.Detail = err.Error()
		}

		fields := []zap.Field{
			zap.Int("status", page.Code),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		}
		if page.Code >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Debug("request rejected", fields...)
		}

		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			body := APIError{Error: APIErrorBody{Status: page.Code, Name: http.StatusText(page.Code), Message: page.Message}}
			if err := c.JSON(page.Code, body); err != nil {
				log.Error("failed to write error response", zap.Error(err))
			}
			return
		}

		data := handlers.PageData{
			Title:    page.Title,
			SiteName: siteName,
			Breadcrumbs: []handlers.Breadcrumb{
				{Title: "Home", URL: "/"},
				{Title: "Error", URL: ""},
			},
			Data: page,
		}
		if renderErr := c.Render(page.Code, "error.html", data); renderErr != nil {
			// Fallback to plain text if template fails
			log.Error("failed to render error page", zap.Error(fmt.Errorf("render error.html: %w", renderErr)))
			c.String(page.Code, page.Message)
		}
	}
}

func classify(err error) ErrorPage {
	var (
		he   *echo.HTTPError
		ferr *cms.FetchError
	)
	switch {
	case errors.Is(err, site.ErrNotFound):
		return errorPage(http.StatusNotFound, "")
	case errors.As(err, &he):
		msg, _ := he.Message.(string)
		if msg == http.StatusText(he.Code) {
			msg = ""
		}
		return errorPage(he.Code, msg)
	case errors.As(err, &ferr):
		if ferr.NotFound() {
			return errorPage(http.StatusNotFound, "")
		}
		return errorPage(http.StatusBadGateway, "")
	default:
		return errorPage(http.StatusInternalServerError, "")
	}
}

func errorPage(code int, msg string) ErrorPage {
	title := http.StatusText(code)
	def := "Something went wrong. Please try again later."
	switch code {
	case http.StatusNotFound:
		title = "Page Not Found"
		def = "The page you're looking for doesn't exist."
	case http.StatusUnauthorized:
		title = "Unauthorized"
		def = "A valid API token is required."
	case http.StatusBadRequest:
		title = "Bad Request"
		def = "The request could not be processed."
	case http.StatusBadGateway:
		title = "Content Unavailable"
		def = "School content could not be loaded. Please try again shortly."
	case http.StatusServiceUnavailable:
		title = "Service Unavailable"
		def = "This feature is not available right now."
	}
	if title == "" {
		title = "Error"
	}
	if msg == "" {
		msg = def
	}
	return ErrorPage{Code: code, Title: title, Message: msg}
}
