// Package app wires the infrastructure shared by the server, the worker and
// cmsctl from a Config.
package app

import (
	"errors"

	"go.uber.org/zap"

	"statehouse_site/internal/cms"
	"statehouse_site/internal/config"
	"statehouse_site/internal/services"
	"statehouse_site/internal/site"
	"statehouse_site/internal/tasks"
)

// Options selects the optional parts of the infrastructure.
type Options struct {
	// Database connects to postgres when database_url is set.
	Database bool
	// SkipSnapshots leaves the bbolt store closed, for short-lived commands
	// that must not wait on a running server's file lock.
	SkipSnapshots bool
	// Policy overrides the environment's degradation policy.
	Policy cms.Policy
}

// Infra holds the CMS client and whatever backing stores are configured.
// Cache, Snapshots and Downloads are nil when unavailable.
type Infra struct {
	Config    *config.Config
	Logger    *zap.Logger
	Client    *cms.Client
	Cache     *services.ResponseCache
	Snapshots *services.SnapshotStore
	Downloads *services.DownloadService

	closers []func() error
}

// Open connects the configured stores and builds the CMS client. Redis and
// snapshot failures are logged and the client runs without them; a database
// failure is returned.
func Open(cfg *config.Config, log *zap.Logger, opts Options) (*Infra, error) {
	in := &Infra{Config: cfg, Logger: log}

	clientOpts := cms.Options{
		BaseURL:    cfg.CMS.URL,
		Token:      cfg.CMS.Token,
		Timeout:    cfg.CMS.Timeout,
		Revalidate: cfg.CMS.Revalidate,
		Policy:     opts.Policy,
		Logger:     log.Named("cms"),
	}
	if clientOpts.Policy == nil {
		if cfg.IsProduction() {
			clientOpts.Policy = cms.ProductionPolicy()
		} else {
			clientOpts.Policy = cms.DevelopmentPolicy()
		}
	}

	if cfg.RedisURL != "" {
		cache, err := services.NewResponseCache(cfg.RedisURL, log)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			in.Cache = cache
			in.closers = append(in.closers, cache.Close)
			clientOpts.Cache = cache
		}
	}

	if cfg.SnapshotPath != "" && !opts.SkipSnapshots {
		store, err := services.OpenSnapshotStore(cfg.SnapshotPath, log)
		if err != nil {
			log.Warn("snapshot store unavailable, stale fallback disabled", zap.Error(err))
		} else {
			in.Snapshots = store
			in.closers = append(in.closers, store.Close)
			clientOpts.Snapshots = store
		}
	}

	if opts.Database && cfg.DatabaseURL != "" {
		db, err := services.InitDB(cfg.DatabaseURL, log, !cfg.IsProduction())
		if err != nil {
			in.Close()
			return nil, err
		}
		if err := services.AutoMigrate(db, log); err != nil {
			in.Close()
			return nil, err
		}
		in.Downloads = services.NewDownloadService(db)
		if sqlDB, err := db.DB(); err == nil {
			in.closers = append(in.closers, sqlDB.Close)
		}
	}

	in.Client = cms.NewClient(clientOpts)
	return in, nil
}

// Site builds the page loaders on top of the client.
func (in *Infra) Site() *site.Service {
	opts := site.Options{
		SiteName:  in.Config.SiteName,
		MediaBase: in.Client.BaseURL(),
		Logger:    in.Logger,
	}
	if in.Downloads != nil {
		opts.Downloads = in.Downloads
	}
	return site.New(in.Client, opts)
}

// Tasks returns a registry with the built-in tasks defined.
func (in *Infra) Tasks() *tasks.Registry {
	r := tasks.NewRegistry(in.Logger.Named("tasks"))
	deps := tasks.Deps{
		Client:   in.Client,
		Requests: site.Requests,
		Logger:   in.Logger,
	}
	if in.Cache != nil {
		deps.Cache = in.Cache
	}
	tasks.DefineTasks(r, deps)
	return r
}

// Close releases every store in reverse order of opening.
func (in *Infra) Close() error {
	var errs []error
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	in.closers = nil
	return errors.Join(errs...)
}
