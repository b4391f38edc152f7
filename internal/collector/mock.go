package collector

import (
	"context"
	"sync/atomic"

	"SoundTreasury/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	ModelPayload *model.ModelPayload
	SectorData   map[string]*model.ComparisonSeries
	ModelErr     error
	SectorErr    error

	ModelCalls  atomic.Int64
	SectorCalls atomic.Int64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchModelSeries(_ context.Context) (*model.ModelPayload, error) {
	m.ModelCalls.Add(1)
	if m.ModelErr != nil {
		return nil, m.ModelErr
	}
	if err := ValidateModelPayload(m.ModelPayload); err != nil {
		return nil, err
	}
	return m.ModelPayload, nil
}

func (m *MockFetcher) FetchSectorSeries(_ context.Context, sectorKey string) (*model.ComparisonSeries, error) {
	m.SectorCalls.Add(1)
	if m.SectorErr != nil {
		return nil, m.SectorErr
	}
	s, ok := m.SectorData[sectorKey]
	if !ok {
		return nil, ValidateSectorSeries(nil)
	}
	if err := ValidateSectorSeries(s); err != nil {
		return nil, err
	}
	return s, nil
}
