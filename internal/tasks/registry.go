package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrUnknownTask is returned by Run for a name nothing registered.
var ErrUnknownTask = errors.New("task handler not found")

// TaskHandler runs one named task. The result map is logged and returned to
// the caller (the worker loop or cmsctl).
type TaskHandler func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error)

// Registry maps task names to handlers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]TaskHandler
	logger   *zap.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{handlers: make(map[string]TaskHandler), logger: logger}
}

// Register adds a handler for a task name
func (r *Registry) Register(name string, handler TaskHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Get retrieves a handler for a task name
func (r *Registry) Get(name string) (TaskHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}

// Names lists registered tasks in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes a task by name and logs its runtime and result.
func (r *Registry) Run(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	handler, ok := r.Get(name)
	if !ok {
		r.logger.Error("task handler not found", zap.String("task", name))
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	if args == nil {
		args = make(map[string]interface{})
	}

	start := time.Now()
	result, err := handler(ctx, args)
	runtime := time.Since(start)

	if err != nil {
		r.logger.Error("task failed",
			zap.String("task", name),
			zap.Duration("runtime", runtime),
			zap.Error(err),
		)
		return result, err
	}
	r.logger.Info("task completed",
		zap.String("task", name),
		zap.Duration("runtime", runtime),
		zap.Any("result", result),
	)
	return result, nil
}
