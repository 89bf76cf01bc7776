package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"statehouse_site/internal/app"
	"statehouse_site/internal/config"
	"statehouse_site/internal/handlers"
	"statehouse_site/internal/logging"
	siteMiddleware "statehouse_site/internal/middleware"
	"statehouse_site/internal/render"
	"statehouse_site/internal/site"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	infra, err := app.Open(cfg, logger, app.Options{Database: true})
	if err != nil {
		logger.Fatal("failed to initialize", zap.Error(err))
	}
	defer infra.Close()
	if infra.Downloads == nil {
		logger.Warn("database_url not set, downloads API disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := infra.Site()
	renderer, err := render.New(cfg.TemplatesDir, render.Funcs(svc.Normalizer().Media.URL), logger.Named("render"))
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}
	if !cfg.IsProduction() {
		go func() {
			if err := renderer.Watch(ctx); err != nil {
				logger.Warn("template reload disabled", zap.Error(err))
			}
		}()
	}

	var store handlers.DownloadStore
	if infra.Downloads != nil {
		store = infra.Downloads
	}
	e := newServer(cfg, logger, svc, store, renderer)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("cms", cfg.CMS.URL))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newServer registers middleware and every route. store may be nil.
func newServer(cfg *config.Config, logger *zap.Logger, svc *site.Service, store handlers.DownloadStore, renderer echo.Renderer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(siteMiddleware.RequestLogger(logger))
	e.HTTPErrorHandler = siteMiddleware.CustomErrorHandler(logger, cfg.SiteName, !cfg.IsProduction())
	e.Renderer = renderer

	e.Static("/static", cfg.StaticDir)
	e.GET("/healthz", handlers.Health)

	pages := handlers.NewPageHandler(svc, cfg.RefreshDelay)
	e.GET("/", pages.Home)
	e.GET("/about", pages.About)
	e.GET("/admissions", pages.Admissions)
	e.GET("/academics", pages.Academics)
	e.GET("/staff", pages.Staff)
	e.GET("/departments", pages.Departments)
	e.GET("/announcements", pages.Announcements)
	e.GET("/announcements/:slug", pages.Announcement)
	e.GET("/gallery", pages.Gallery)
	e.GET("/gallery/:id", pages.Album)
	e.GET("/clubs", pages.Clubs)
	e.GET("/search", pages.Search)
	e.GET("/downloads", pages.Downloads)

	downloads := handlers.NewDownloadHandler(store)
	api := e.Group("/api/downloads")
	api.GET("", downloads.List)
	api.GET("/:id", downloads.Get)

	guard := siteMiddleware.RequireToken(cfg.AdminToken)
	api.POST("", downloads.Create, guard)
	api.PUT("/:id", downloads.Update, guard)
	api.DELETE("/:id", downloads.Delete, guard)

	return e
}
