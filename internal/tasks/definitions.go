package tasks

import (
	"go.uber.org/zap"

	"statehouse_site/internal/cms"
)

// Deps are the collaborators the built-in tasks need. Cache may be nil when
// no redis is configured; the purge task then reports an error when run.
type Deps struct {
	Client   Revalidator
	Requests func() []cms.Request
	Cache    Purger
	Logger   *zap.Logger
}

// DefineTasks registers all available tasks
func DefineTasks(r *Registry, deps Deps) {
	warm := &WarmTaskDef{Client: deps.Client, Requests: deps.Requests, Logger: deps.Logger}
	r.Register(warm.TaskID(), warm.HandleExecution)

	purge := &PurgeCacheTaskDef{Cache: deps.Cache}
	r.Register(purge.TaskID(), purge.HandleExecution)
}
