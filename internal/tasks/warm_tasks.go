package tasks

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"statehouse_site/internal/cms"
)

// WarmConcurrency bounds the number of CMS requests in flight while warming.
const WarmConcurrency = 4

// Revalidator re-fetches a request, bypassing the cache read.
type Revalidator interface {
	Revalidate(ctx context.Context, req cms.Request) cms.Result[cms.Envelope]
}

// WarmReport summarizes one warm run.
type WarmReport struct {
	Total     int `json:"total"`
	Refreshed int `json:"refreshed"`
	Failed    int `json:"failed"`
}

// Map converts the report to a task result.
func (r WarmReport) Map() map[string]interface{} {
	return map[string]interface{}{
		"total":     r.Total,
		"refreshed": r.Refreshed,
		"failed":    r.Failed,
	}
}

// WarmTaskDef refreshes the response cache and snapshots for every request
// the site issues, so page views inside the window never wait on the CMS.
type WarmTaskDef struct {
	Client   Revalidator
	Requests func() []cms.Request
	Logger   *zap.Logger
}

// TaskID returns the unique identifier for this task
func (t *WarmTaskDef) TaskID() string {
	return "warm_cms"
}

// Warm revalidates every request. Failures are counted, not returned; the
// client has already logged them.
func (t *WarmTaskDef) Warm(ctx context.Context) WarmReport {
	reqs := t.Requests()
	var refreshed, failed atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(WarmConcurrency)
	for _, req := range reqs {
		g.Go(func() error {
			if ctx.Err() != nil {
				failed.Add(1)
				return nil
			}
			res := t.Client.Revalidate(ctx, req)
			if res.Outcome == cms.Fresh {
				refreshed.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	report := WarmReport{Total: len(reqs), Refreshed: int(refreshed.Load()), Failed: int(failed.Load())}
	if report.Failed > 0 && t.Logger != nil {
		t.Logger.Warn("cms warm incomplete", zap.Int("failed", report.Failed), zap.Int("total", report.Total))
	}
	return report
}

// HandleExecution runs Warm as a registry task.
func (t *WarmTaskDef) HandleExecution(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	return t.Warm(ctx).Map(), nil
}
