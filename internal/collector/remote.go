package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"SoundTreasury/internal/model"
)

// RemoteFetcher implements Fetcher against the upstream JSON data service.
type RemoteFetcher struct {
	client  *resty.Client
	limiter *rate.Limiter
}

// NewRemoteFetcher creates a fetcher for the given base URL. rps bounds the
// request rate to the upstream; zero disables the limiter.
func NewRemoteFetcher(baseURL, apiKey string, timeout time.Duration, rps float64) *RemoteFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("X-API-Key", apiKey)
	}

	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &RemoteFetcher{client: client, limiter: limiter}
}

func (f *RemoteFetcher) Name() string { return "remote" }

func (f *RemoteFetcher) wait(ctx context.Context) error {
	if f.limiter == nil {
		return nil
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %v", ErrNetwork, err)
	}
	return nil
}

// FetchModelSeries retrieves the fair-value series and stats.
func (f *RemoteFetcher) FetchModelSeries(ctx context.Context) (*model.ModelPayload, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	var payload model.ModelPayload
	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get("/model-series")
	if err != nil {
		return nil, fmt.Errorf("%w: fetch model series: %v", ErrNetwork, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: model series: status %d", ErrNetwork, resp.StatusCode())
	}
	if err := ValidateModelPayload(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchSectorSeries retrieves the processed comparison series for a sector.
func (f *RemoteFetcher) FetchSectorSeries(ctx context.Context, sectorKey string) (*model.ComparisonSeries, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	var series model.ComparisonSeries
	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&series).
		SetPathParams(map[string]string{"key": sectorKey}).
		Get("/sector-series/{key}")
	if err != nil {
		return nil, fmt.Errorf("%w: fetch sector series %s: %v", ErrNetwork, sectorKey, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: sector series %s: status %d", ErrNetwork, sectorKey, resp.StatusCode())
	}
	if err := ValidateSectorSeries(&series); err != nil {
		return nil, err
	}
	return &series, nil
}
