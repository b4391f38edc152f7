package calculator

import (
	"math"
	"math/rand"
	"time"

	"SoundTreasury/internal/model"
)

// simulatedSeed fixes the PRNG so the simulated series keeps the same shape
// run-to-run.
const simulatedSeed = 7151369

// simulatedRSquared is the advertised fit quality of the synthetic series.
const simulatedRSquared = 0.92

// baselineStart is the first date with meaningful market price history.
var baselineStart = time.Date(2010, time.July, 17, 0, 0, 0, 0, time.UTC)

// BaselineBundle produces the instant pre-fetch series: one point per day
// from the first priced date through now, shaped by the fair-value curve
// plus a fixed cyclical swing. It is fully deterministic and computed
// eagerly so the first paint never shows an empty chart.
func BaselineBundle(p Params, now time.Time, chartMax int) *model.ModelBundle {
	points := make([]model.TimePoint, 0, int(now.Sub(baselineStart).Hours()/24)+1)
	for t := baselineStart; !t.After(now); t = t.Add(24 * time.Hour) {
		days := DaysSinceGenesis(t)
		fair := p.FairPrice(days)
		cycle := math.Sin(days/600) * 1.5
		wobble := math.Cos(days/50) * 0.3
		price := fair * math.Exp(cycle+wobble)
		upper, lower := p.Bands(fair)
		points = append(points, model.TimePoint{
			Date:             t.UnixMilli(),
			Price:            &price,
			FairPrice:        fair,
			DaysSinceGenesis: days,
			UpperBand:        upper,
			LowerBand:        lower,
		})
	}
	return bundle(points, p, chartMax, model.SourceBaseline)
}

// SimulatedBundle produces the fetch-failure fallback: a sparse series every
// 30 days from day 500 through the end of the projection year. Points in the
// past get a plausible price (cycle plus bounded seeded noise); future points
// carry only the model curve. The fixed seed keeps the shape stable.
func SimulatedBundle(p Params, now time.Time, chartMax int) *model.ModelBundle {
	rng := rand.New(rand.NewSource(simulatedSeed))
	end := time.Date(ProjectToYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	daysTotal := DaysSinceGenesis(end)
	nowMs := now.UnixMilli()

	points := make([]model.TimePoint, 0, int(daysTotal/30))
	for days := 500.0; days < daysTotal; days += 30 {
		t := GenesisPlusDays(days)
		fair := p.FairPrice(days)
		upper, lower := p.Bands(fair)
		pt := model.TimePoint{
			Date:             t.UnixMilli(),
			FairPrice:        fair,
			DaysSinceGenesis: days,
			UpperBand:        upper,
			LowerBand:        lower,
		}
		if t.UnixMilli() <= nowMs {
			cycle := math.Sin(days/600) * 1.5
			noise := (rng.Float64() - 0.5) * 0.2
			price := fair * math.Exp(cycle+noise)
			pt.Price = &price
		}
		points = append(points, pt)
	}
	return bundle(points, p, chartMax, model.SourceSimulated)
}

func bundle(points []model.TimePoint, p Params, chartMax int, source string) *model.ModelBundle {
	stats := model.ModelStats{
		StdDev:     p.StdDev,
		RSquared:   simulatedRSquared,
		DataSource: source,
	}
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Price != nil {
			price := *points[i].Price
			fair := points[i].FairPrice
			stats.CurrentPrice = &price
			stats.CurrentFairPrice = &fair
			break
		}
	}
	return &model.ModelBundle{
		Data:  points,
		Chart: Downsample(points, chartMax),
		Stats: stats,
	}
}
