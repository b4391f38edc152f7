package calculator

import (
	"testing"
	"time"

	"SoundTreasury/internal/model"
)

var testNow = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func TestBaselineBundle_CoversDailyHistory(t *testing.T) {
	b := BaselineBundle(DefaultParams(), testNow, 800)
	if len(b.Data) == 0 {
		t.Fatal("baseline produced no points")
	}
	first := b.Data[0].Time()
	if !first.Equal(time.Date(2010, time.July, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("baseline should start at the first priced date, got %v", first)
	}
	for i, p := range b.Data {
		if p.Price == nil {
			t.Fatalf("baseline point %d has no price", i)
		}
		if p.FairPrice <= 0 {
			t.Fatalf("baseline point %d has non-positive fair price", i)
		}
	}
	if len(b.Chart) > 800 {
		t.Errorf("chart exceeds budget: %d points", len(b.Chart))
	}
	if b.Stats.DataSource != model.SourceBaseline {
		t.Errorf("unexpected source label %q", b.Stats.DataSource)
	}
}

func TestBaselineBundle_Deterministic(t *testing.T) {
	a := BaselineBundle(DefaultParams(), testNow, 800)
	b := BaselineBundle(DefaultParams(), testNow, 800)
	if len(a.Data) != len(b.Data) {
		t.Fatalf("lengths differ: %d vs %d", len(a.Data), len(b.Data))
	}
	for i := range a.Data {
		if *a.Data[i].Price != *b.Data[i].Price {
			t.Fatalf("prices differ at index %d", i)
		}
	}
}

func TestSimulatedBundle_FuturePointsUnpriced(t *testing.T) {
	b := SimulatedBundle(DefaultParams(), testNow, 800)
	if len(b.Data) == 0 {
		t.Fatal("simulated series is empty")
	}

	nowMs := testNow.UnixMilli()
	sawFuture := false
	for i, p := range b.Data {
		if p.Date <= nowMs && p.Price == nil {
			t.Fatalf("past point %d missing price", i)
		}
		if p.Date > nowMs {
			sawFuture = true
			if p.Price != nil {
				t.Fatalf("future point %d carries a price", i)
			}
		}
	}
	if !sawFuture {
		t.Error("simulated series should project past now")
	}

	last := b.Data[len(b.Data)-1].Time()
	if last.Year() != ProjectToYear {
		t.Errorf("projection should reach %d, ends %v", ProjectToYear, last)
	}
	if b.Stats.DataSource != model.SourceSimulated {
		t.Errorf("unexpected source label %q", b.Stats.DataSource)
	}
}

func TestSimulatedBundle_SeededNoiseIsStable(t *testing.T) {
	a := SimulatedBundle(DefaultParams(), testNow, 800)
	b := SimulatedBundle(DefaultParams(), testNow, 800)
	for i := range a.Data {
		ap, bp := a.Data[i].Price, b.Data[i].Price
		if (ap == nil) != (bp == nil) {
			t.Fatalf("price presence differs at index %d", i)
		}
		if ap != nil && *ap != *bp {
			t.Fatalf("seeded noise not reproducible at index %d", i)
		}
	}
}

func TestSimulatedBundle_StatsFromLastPricedPoint(t *testing.T) {
	b := SimulatedBundle(DefaultParams(), testNow, 800)
	if b.Stats.CurrentPrice == nil || b.Stats.CurrentFairPrice == nil {
		t.Fatal("stats should carry the last priced point")
	}
	var want model.TimePoint
	for i := len(b.Data) - 1; i >= 0; i-- {
		if b.Data[i].Price != nil {
			want = b.Data[i]
			break
		}
	}
	if *b.Stats.CurrentPrice != *want.Price {
		t.Errorf("current price %v, want %v", *b.Stats.CurrentPrice, *want.Price)
	}
	if *b.Stats.CurrentFairPrice != want.FairPrice {
		t.Errorf("current fair price %v, want %v", *b.Stats.CurrentFairPrice, want.FairPrice)
	}
}
