package calculator

import "SoundTreasury/internal/model"

// DefaultChartPoints is the target point count for chart rendering. Fifteen
// years of daily data is visually indistinguishable from this subsample.
const DefaultChartPoints = 800

// Downsample reduces an ordered series to at most max points. It selects an
// index-proportional subset that always keeps the first and last points and
// never alters or synthesizes values. Output order follows input order and
// the same input always yields the same output.
func Downsample(points []model.TimePoint, max int) []model.TimePoint {
	if max <= 0 {
		return nil
	}
	if len(points) <= max {
		out := make([]model.TimePoint, len(points))
		copy(out, points)
		return out
	}
	if max == 1 {
		return []model.TimePoint{points[0]}
	}

	out := make([]model.TimePoint, 0, max)
	last := len(points) - 1
	prev := -1
	for i := 0; i < max; i++ {
		idx := i * last / (max - 1)
		if idx == prev {
			continue
		}
		out = append(out, points[idx])
		prev = idx
	}
	return out
}
