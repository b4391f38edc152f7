// Package cache provides the two cache tiers owned by the orchestrator: a
// session-lived in-process tier and a sqlite-backed persisted tier with
// expiry. The orchestrator is the only writer; returned values are shared
// snapshots and must not be mutated by readers.
package cache

import (
	"sync"

	"SoundTreasury/internal/model"
)

type modelEntry struct {
	bundle *model.ModelBundle
	source string
}

type sectorEntry struct {
	series *model.ComparisonSeries
	source string
}

// Memory is the in-process tier. It has no TTL: an entry means "already
// resolved this session" and lives until explicitly invalidated.
type Memory struct {
	mu      sync.RWMutex
	model   *modelEntry
	sectors map[string]sectorEntry
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{sectors: make(map[string]sectorEntry)}
}

// Model returns the cached fair-value bundle and its provenance label.
func (m *Memory) Model() (*model.ModelBundle, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.model == nil {
		return nil, "", false
	}
	return m.model.bundle, m.model.source, true
}

// SetModel stores the fair-value bundle with its provenance label.
func (m *Memory) SetModel(b *model.ModelBundle, source string) {
	m.mu.Lock()
	m.model = &modelEntry{bundle: b, source: source}
	m.mu.Unlock()
}

// Sector returns the cached comparison series for one sector key.
func (m *Memory) Sector(key string) (*model.ComparisonSeries, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sectors[key]
	if !ok {
		return nil, "", false
	}
	return e.series, e.source, true
}

// SetSector stores the comparison series for one sector key.
func (m *Memory) SetSector(key string, s *model.ComparisonSeries, source string) {
	m.mu.Lock()
	m.sectors[key] = sectorEntry{series: s, source: source}
	m.mu.Unlock()
}

// Invalidate drops everything, forcing the next request through the lower
// tiers.
func (m *Memory) Invalidate() {
	m.mu.Lock()
	m.model = nil
	m.sectors = make(map[string]sectorEntry)
	m.mu.Unlock()
}
