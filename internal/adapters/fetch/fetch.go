// Package fetch pulls route and tick data from the source site's JSON
// API. This is the only concurrent part of the system; the rating
// pipeline itself consumes the fetched files strictly sequentially.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pitchsix/cragrank/internal/domain/model"
	"github.com/pitchsix/cragrank/pkg/logger"
	"github.com/pitchsix/cragrank/pkg/metrics"
)

// Client defaults.
const (
	defaultPageSize     = 200
	defaultWorkers      = 4
	defaultRPS          = 2
	defaultHTTPTimeout  = 15 * time.Second
	maxRoutesPerRequest = 100 // API limit on ids per route lookup
)

// Client fetches paginated ticks and batched route metadata under a
// shared rate limit.
type Client struct {
	base     string
	pageSize int
	workers  int
	limiter  *rate.Limiter
	http     *http.Client
	logger   logger.Logger
}

// NewClient creates a Client. WithBaseURL is required for real use.
func NewClient(opts ...Option) *Client {
	c := &Client{
		pageSize: defaultPageSize,
		workers:  defaultWorkers,
		limiter:  rate.NewLimiter(rate.Limit(defaultRPS), 1),
		http:     &http.Client{Timeout: defaultHTTPTimeout},
		logger:   logger.Get().Named("fetch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ticksPage mirrors the get-ticks payload.
type ticksPage struct {
	Ticks   []model.Tick `json:"ticks"`
	Success int          `json:"success"`
}

// routesPage mirrors the get-routes payload.
type routesPage struct {
	Routes  []model.Route `json:"routes"`
	Success int           `json:"success"`
}

// Ticks fetches a user's full tick log, page by page.
func (c *Client) Ticks(ctx context.Context, userID int64) ([]model.Tick, error) {
	var out []model.Tick
	for pos := 0; ; pos += c.pageSize {
		url := fmt.Sprintf("%s/get-ticks?userId=%d&startPos=%d", c.base, userID, pos)
		var page ticksPage
		if err := c.getJSON(ctx, url, &page); err != nil {
			return nil, fmt.Errorf("fetch ticks for user %d: %w", userID, err)
		}
		out = append(out, page.Ticks...)
		if len(page.Ticks) < c.pageSize {
			return out, nil
		}
	}
}

// Routes fetches metadata for the given route ids, batched to the API
// limit per request.
func (c *Client) Routes(ctx context.Context, ids []int64) ([]model.Route, error) {
	var out []model.Route
	for start := 0; start < len(ids); start += maxRoutesPerRequest {
		end := min(start+maxRoutesPerRequest, len(ids))
		parts := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			parts = append(parts, strconv.FormatInt(id, 10))
		}
		url := fmt.Sprintf("%s/get-routes?routeIds=%s", c.base, strings.Join(parts, ","))
		var page routesPage
		if err := c.getJSON(ctx, url, &page); err != nil {
			return nil, fmt.Errorf("fetch routes: %w", err)
		}
		out = append(out, page.Routes...)
	}
	return out, nil
}

// AllTicks fetches many users through a bounded worker pool sharing
// one limiter. A failing user is logged and skipped; the run
// continues. Order across users is unspecified — the rating pipeline
// sorts by timestamp anyway.
func (c *Client) AllTicks(ctx context.Context, userIDs []int64) []model.Tick {
	jobs := make(chan int64)

	var mu sync.Mutex
	var out []model.Tick

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				ticks, err := c.Ticks(ctx, id)
				if err != nil {
					c.logger.Warn(ctx, "tick fetch failed; skipping user",
						logger.Int64("userID", id),
						logger.Error(err),
					)
					continue
				}
				mu.Lock()
				out = append(out, ticks...)
				mu.Unlock()
			}
		}()
	}

	for _, id := range userIDs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return out
		case jobs <- id:
		}
	}
	close(jobs)
	wg.Wait()
	return out
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	metrics.RecordFetchRequest()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordFetchError()
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // response body
	metrics.ObserveFetchLatency(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.RecordFetchError()
		return fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		metrics.RecordFetchError()
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
