package tasks

import (
	"context"
	"errors"
	"fmt"
)

// Purger removes cached CMS responses whose key starts with prefix.
type Purger interface {
	Purge(ctx context.Context, prefix string) (int, error)
}

// PurgeCacheTaskDef drops cached responses so the next page view refetches.
type PurgeCacheTaskDef struct {
	Cache Purger
}

// TaskID returns the unique identifier for this task
func (t *PurgeCacheTaskDef) TaskID() string {
	return "purge_cms_cache"
}

// HandleExecution purges keys matching args["prefix"], or everything the
// cache owns when no prefix is given.
func (t *PurgeCacheTaskDef) HandleExecution(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	if t.Cache == nil {
		return nil, errors.New("no response cache configured")
	}
	prefix, _ := args["prefix"].(string)

	removed, err := t.Cache.Purge(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to purge cache: %w", err)
	}
	return map[string]interface{}{
		"status":  "success",
		"prefix":  prefix,
		"removed": removed,
	}, nil
}
