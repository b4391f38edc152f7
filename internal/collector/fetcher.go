package collector

import (
	"context"
	"errors"
	"fmt"

	"SoundTreasury/internal/model"
)

// Failure taxonomy for the fetch boundary. The orchestrator recovers both
// locally; neither ever reaches the presentation layer as an error.
var (
	// ErrNetwork marks transport failures and non-success statuses.
	ErrNetwork = errors.New("network failure")
	// ErrInvalidPayload marks responses that fail shape validation.
	ErrInvalidPayload = errors.New("invalid payload")
)

// Fetcher defines the interface for fetching dashboard data from the
// upstream data service.
type Fetcher interface {
	FetchModelSeries(ctx context.Context) (*model.ModelPayload, error)
	FetchSectorSeries(ctx context.Context, sectorKey string) (*model.ComparisonSeries, error)
	Name() string
}

// ValidateModelPayload checks the required fields of a model-series response
// before it may enter the core.
func ValidateModelPayload(p *model.ModelPayload) error {
	if p == nil {
		return fmt.Errorf("%w: empty response", ErrInvalidPayload)
	}
	if len(p.Data) == 0 {
		return fmt.Errorf("%w: missing data series", ErrInvalidPayload)
	}
	if p.Stats == nil {
		return fmt.Errorf("%w: missing stats", ErrInvalidPayload)
	}
	return nil
}

// ValidateSectorSeries checks the required fields of a sector-series response.
func ValidateSectorSeries(s *model.ComparisonSeries) error {
	if s == nil {
		return fmt.Errorf("%w: empty response", ErrInvalidPayload)
	}
	if len(s.Years) == 0 {
		return fmt.Errorf("%w: missing years", ErrInvalidPayload)
	}
	if len(s.Scoreboard) == 0 {
		return fmt.Errorf("%w: missing scoreboard", ErrInvalidPayload)
	}
	return nil
}
