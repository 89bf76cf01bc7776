// Package cms is the read-only Strapi REST client used by every page.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTimeout    = 15 * time.Second
	DefaultRevalidate = 60 * time.Second

	// maxErrorBody bounds how much of an error response is kept for logs.
	maxErrorBody = 512
)

// Cache stores raw response bodies for the revalidation window.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// SnapshotStore keeps the last good body per URL for stale fallbacks.
type SnapshotStore interface {
	Save(key string, body []byte) error
	Load(key string) ([]byte, bool)
}

// Meta is the pagination block Strapi returns with collections.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// Envelope is the {data, meta} body of every Strapi response. Data is left
// undecoded (maps and slices) for the content normalizer.
type Envelope struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// NullEnvelope is the {data: null} sentinel substituted for failed requests.
func NullEnvelope() Envelope {
	return Envelope{}
}

// IsNull reports whether the envelope carries no records.
func (e Envelope) IsNull() bool {
	if e.Data == nil {
		return true
	}
	if list, ok := e.Data.([]any); ok {
		return len(list) == 0
	}
	return false
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	Revalidate time.Duration
	Policy     Policy
	Cache      Cache
	Snapshots  SnapshotStore
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client performs GET requests against {BaseURL}/api.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	revalidate time.Duration
	policy     Policy
	cache      Cache
	snapshots  SnapshotStore
	http       *http.Client
	logger     *zap.Logger
}

// NewClient creates a client. A nil policy propagates every failure.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		timeout:    opts.Timeout,
		revalidate: opts.Revalidate,
		policy:     opts.Policy,
		cache:      opts.Cache,
		snapshots:  opts.Snapshots,
		http:       opts.HTTPClient,
		logger:     opts.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.policy == nil {
		c.policy = DevelopmentPolicy()
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// BaseURL is the CMS origin, also used to absolutize media paths.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the absolute URL for a request.
func (c *Client) URL(req Request) string {
	return c.baseURL + "/api" + req.String()
}

// Get fetches a request, serving from cache inside the revalidation window.
func (c *Client) Get(ctx context.Context, req Request) Result[Envelope] {
	return c.get(ctx, req, true)
}

// Revalidate fetches a request bypassing the cache read, then refreshes the
// cache and snapshot on success.
func (c *Client) Revalidate(ctx context.Context, req Request) Result[Envelope] {
	return c.get(ctx, req, false)
}

func (c *Client) get(ctx context.Context, req Request, readCache bool) Result[Envelope] {
	key := c.URL(req)

	if readCache && c.cache != nil && c.revalidate > 0 {
		if body, err := c.cache.Get(ctx, key); err == nil {
			if env, err := decode(body); err == nil {
				return Result[Envelope]{Value: env, Outcome: Cached}
			}
		}
	}

	body, ferr := c.fetch(ctx, key)
	if ferr == nil {
		env, err := decode(body)
		if err == nil {
			c.remember(ctx, key, body)
			return Result[Envelope]{Value: env, Outcome: Fresh}
		}
		ferr = &FetchError{Class: ClassDecode, URL: key, HasToken: c.token != "", Err: err}
	}

	return c.degrade(key, req, ferr)
}

func (c *Client) remember(ctx context.Context, key string, body []byte) {
	if c.cache != nil && c.revalidate > 0 {
		if err := c.cache.Set(ctx, key, body, c.revalidate); err != nil {
			c.logger.Warn("cms cache write failed", zap.String("url", key), zap.Error(err))
		}
	}
	if c.snapshots != nil {
		if err := c.snapshots.Save(key, body); err != nil {
			c.logger.Warn("cms snapshot write failed", zap.String("url", key), zap.Error(err))
		}
	}
}

func (c *Client) degrade(key string, req Request, ferr *FetchError) Result[Envelope] {
	action := c.policy.For(ferr.Class)
	fields := []zap.Field{
		zap.String("endpoint", req.String()),
		zap.String("class", string(ferr.Class)),
		zap.Int("status", ferr.Status),
		zap.Bool("has_token", ferr.HasToken),
		zap.String("action", action.String()),
		zap.Error(ferr),
	}

	switch action {
	case ServeStale:
		if c.snapshots != nil {
			if body, ok := c.snapshots.Load(key); ok {
				if env, err := decode(body); err == nil {
					c.logger.Warn("cms fetch failed, serving snapshot", fields...)
					return Result[Envelope]{Value: env, Outcome: Stale, Err: ferr}
				}
			}
		}
		fallthrough
	case SubstituteDefault:
		c.logger.Warn("cms fetch failed, substituting empty data", fields...)
		return Result[Envelope]{Value: NullEnvelope(), Outcome: Substituted, Err: ferr}
	default:
		c.logger.Error("cms fetch failed", fields...)
		return Result[Envelope]{Value: NullEnvelope(), Outcome: Failed, Err: ferr}
	}
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, *FetchError) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	hasToken := c.token != ""
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Class: ClassTransport, URL: url, HasToken: hasToken, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	if hasToken {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &FetchError{Class: classify(err), URL: url, HasToken: hasToken, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var detail error
		if s := strings.TrimSpace(string(snippet)); s != "" {
			detail = errors.New(s)
		}
		return nil, &FetchError{Class: ClassStatus, Status: resp.StatusCode, URL: url, HasToken: hasToken, Err: detail}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Class: classify(err), URL: url, HasToken: hasToken, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return body, nil
}

func classify(err error) ErrorClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTimeout
	}
	return ClassTransport
}

func decode(body []byte) (Envelope, error) {
	var env Envelope
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}
