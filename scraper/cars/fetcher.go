package cars

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"car-price-scraper/config"
	"car-price-scraper/models"
	"car-price-scraper/storage"
	"car-price-scraper/utils"
)

var (
	// ErrTransport wraps network level failures talking to the proxy.
	ErrTransport = errors.New("proxy transport failed")
	// ErrBadStatus wraps non-2xx proxy responses.
	ErrBadStatus = errors.New("proxy returned non-2xx status")
	// ErrMalformedResponse wraps proxy bodies without results[0].content.
	ErrMalformedResponse = errors.New("proxy response malformed")
)

// StatusError carries the HTTP status of a rejected proxy call.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("%v: %d", ErrBadStatus, e.Code) }
func (e *StatusError) Unwrap() error { return ErrBadStatus }

type proxyRequest struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

type proxyResponse struct {
	Results []struct {
		Content *string `json:"content"`
	} `json:"results"`
}

// Fetcher downloads brand lineup pages through the scraping proxy, stores the
// raw snapshot and extracts model cards from it.
type Fetcher struct {
	cfg       *config.Config
	logger    *utils.Logger
	client    *resty.Client
	extractor *Extractor
	store     storage.SnapshotWriter
	retry     *utils.RetryConfig
}

// NewFetcher creates a Fetcher. It refuses to start without proxy credentials.
func NewFetcher(cfg *config.Config, logger *utils.Logger, extractor *Extractor, store storage.SnapshotWriter) (*Fetcher, error) {
	if err := cfg.ValidateFetch(); err != nil {
		return nil, err
	}

	client := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetBasicAuth(cfg.ProxyUsername, cfg.ProxyPassword).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Fetcher{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		extractor: extractor,
		store:     store,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
			Retryable:   isRetryable,
		},
	}, nil
}

// ResearchURL builds the lineup page URL for a brand.
func (f *Fetcher) ResearchURL(brand string) string {
	return f.cfg.BaseURL + models.Slug(brand) + "/"
}

// Fetch runs fetch, persist and extract for one brand. Failures are
// reported in the outcome and never affect other brands.
func (f *Fetcher) Fetch(ctx context.Context, brand string) *models.FetchOutcome {
	slug := models.Slug(brand)
	out := &models.FetchOutcome{Brand: brand, Slug: slug, URL: f.ResearchURL(brand)}

	var html string
	err := f.retry.Do(ctx, "fetch-"+slug, func() error {
		var err error
		html, err = f.fetchHTML(ctx, out.URL)
		return err
	})
	if err != nil {
		out.Err = err
		f.logger.Error("[fetcher] %s: %v", brand, err)
		return out
	}

	if err := f.store.SaveSnapshot(slug, html); err != nil {
		out.Err = fmt.Errorf("persist snapshot: %w", err)
		f.logger.Error("[fetcher] %s: %v", brand, out.Err)
		return out
	}

	result, err := f.extractor.Extract(brand, html)
	if err != nil {
		out.Err = fmt.Errorf("extract: %w", err)
		f.logger.Error("[fetcher] %s: %v", brand, out.Err)
		return out
	}

	out.Result = result
	f.logger.Info("[fetcher] %s: %d models extracted", models.DisplayName(brand), len(result.Listings))
	return out
}

// FetchAll fetches every brand on the worker pool. The result is keyed by
// brand slug; brands resolving to an already scheduled URL are fetched once.
// Brands not yet scheduled when ctx is done get a failed outcome carrying
// the context error.
func (f *Fetcher) FetchAll(ctx context.Context, brands []string) map[string]*models.FetchOutcome {
	pool := utils.NewWorkerPool(f.cfg.MaxConcurrency, f.cfg.RateLimitMs)
	scheduled := utils.NewURLSet()

	var mu sync.Mutex
	outcomes := make(map[string]*models.FetchOutcome, len(brands))

	for _, brand := range brands {
		if err := ctx.Err(); err != nil {
			out := &models.FetchOutcome{Brand: brand, Slug: models.Slug(brand), URL: f.ResearchURL(brand), Err: err}
			mu.Lock()
			if _, done := outcomes[out.Slug]; !done {
				outcomes[out.Slug] = out
			}
			mu.Unlock()
			continue
		}
		if !scheduled.Add(f.ResearchURL(brand)) {
			f.logger.Debug("[fetcher] Duplicate brand skipped: %s", brand)
			continue
		}
		pool.Submit(func() {
			out := f.Fetch(ctx, brand)
			mu.Lock()
			outcomes[out.Slug] = out
			mu.Unlock()
		})
	}
	pool.Wait()

	return outcomes
}

func (f *Fetcher) fetchHTML(ctx context.Context, target string) (string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(proxyRequest{Source: "universal", URL: target}).
		Post(f.cfg.ProxyEndpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if code := resp.StatusCode(); code < http.StatusOK || code >= http.StatusMultipleChoices {
		return "", &StatusError{Code: code}
	}

	var body proxyResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(body.Results) == 0 || body.Results[0].Content == nil {
		return "", fmt.Errorf("%w: no results[0].content", ErrMalformedResponse)
	}
	return *body.Results[0].Content, nil
}

// isRetryable retries network failures and 5xx responses only.
func isRetryable(err error) bool {
	if errors.Is(err, ErrTransport) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError
	}
	return false
}
