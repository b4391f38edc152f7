package cache

import (
	"path/filepath"
	"testing"
	"time"

	"SoundTreasury/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "cache.db"), DefaultTTL)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testEntry() *Entry {
	price := 98000.0
	return &Entry{
		Data: []model.TimePoint{
			{Date: 1700000000000, Price: &price, FairPrice: 65000, DaysSinceGenesis: 5400},
		},
		Stats: &model.ModelStats{
			StdDev:     0.6,
			RSquared:   0.95,
			DataSource: "Blockchain.com (Live)",
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveModel(testEntry()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadModel()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry back")
	}
	if len(got.Data) != 1 {
		t.Fatalf("expected 1 point, got %d", len(got.Data))
	}
	if got.Data[0].Price == nil || *got.Data[0].Price != 98000 {
		t.Error("price did not survive the round trip")
	}
	if got.Stats == nil || got.Stats.DataSource != "Blockchain.com (Live)" {
		t.Error("stats did not survive the round trip")
	}
	if got.Timestamp == 0 {
		t.Error("timestamp should be stamped at save time")
	}
}

func TestStore_MissingEntry(t *testing.T) {
	s := newTestStore(t)
	got, err := s.LoadModel()
	if err != nil {
		t.Fatalf("load on empty store: %v", err)
	}
	if got != nil {
		t.Error("empty store should return nil without error")
	}
}

func TestStore_OverwriteKeepsLatest(t *testing.T) {
	s := newTestStore(t)

	first := testEntry()
	first.Stats.DataSource = "first"
	if err := s.SaveModel(first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	second := testEntry()
	second.Stats.DataSource = "second"
	if err := s.SaveModel(second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := s.LoadModel()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Stats.DataSource != "second" {
		t.Errorf("expected latest entry, got %q", got.Stats.DataSource)
	}
}

func TestStore_TTLBoundary(t *testing.T) {
	s := newTestStore(t)

	writeTime := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return writeTime }
	if err := s.SaveModel(testEntry()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// one minute short of the TTL: still valid
	s.now = func() time.Time { return writeTime.Add(DefaultTTL - time.Minute) }
	got, err := s.LoadModel()
	if err != nil {
		t.Fatalf("load before expiry: %v", err)
	}
	if got == nil {
		t.Fatal("entry expired too early")
	}

	// exactly at the TTL: already expired
	s.now = func() time.Time { return writeTime.Add(DefaultTTL) }
	got, err = s.LoadModel()
	if err != nil {
		t.Fatalf("load at expiry: %v", err)
	}
	if got != nil {
		t.Error("entry exactly at TTL age must be treated as expired")
	}
}

func TestMemory_ModelAndInvalidate(t *testing.T) {
	m := NewMemory()
	if _, _, ok := m.Model(); ok {
		t.Fatal("fresh cache should be empty")
	}

	b := &model.ModelBundle{Stats: model.ModelStats{DataSource: "test"}}
	m.SetModel(b, "test (cached)")
	got, src, ok := m.Model()
	if !ok || got != b || src != "test (cached)" {
		t.Fatal("cached bundle not returned intact")
	}

	m.Invalidate()
	if _, _, ok := m.Model(); ok {
		t.Error("invalidate should drop the model entry")
	}
}

func TestMemory_SectorKeysIndependent(t *testing.T) {
	m := NewMemory()
	a := &model.ComparisonSeries{}
	m.SetSector("chemicals", a, "Live Data")

	if _, _, ok := m.Sector("agriculture"); ok {
		t.Error("unrelated sector key should miss")
	}
	got, src, ok := m.Sector("chemicals")
	if !ok || got != a || src != "Live Data" {
		t.Error("sector entry not returned intact")
	}
}
