package model

import "time"

// Data-source labels attached to every series handed to the presentation
// layer. The dashboard must always be able to tell live data from fallback.
const (
	SourceSimulated = "Demo Data (Simulation)"
	SourceStatic    = "Static History"
	SourceBaseline  = "Static Baseline"
)

// TimePoint is a single point of the fair-value series. Price is nil for
// timestamps in the future relative to generation time.
type TimePoint struct {
	Date             int64    `json:"date"` // unix milliseconds
	Price            *float64 `json:"price"`
	FairPrice        float64  `json:"fairPrice"`
	DaysSinceGenesis float64  `json:"daysSinceGenesis"`
	UpperBand        float64  `json:"upperBand"`
	LowerBand        float64  `json:"lowerBand"`
}

// Time returns the point's timestamp as a time.Time in UTC.
func (p TimePoint) Time() time.Time {
	return time.UnixMilli(p.Date).UTC()
}

// Verification carries the upstream cross-check flag. A false Matches means
// the upstream compared two sources and they disagreed; the provenance label
// must surface that rather than suppress it.
type Verification struct {
	Matches bool `json:"matches"`
}

// ModelStats describes fit quality and provenance of the series in use.
type ModelStats struct {
	StdDev           float64       `json:"stdDev"`
	RSquared         float64       `json:"rSquared"`
	CurrentPrice     *float64      `json:"currentPrice"`
	CurrentFairPrice *float64      `json:"currentFairPrice"`
	DataSource       string        `json:"dataSource"`
	Verification     *Verification `json:"verification,omitempty"`
}

// ModelPayload is the upstream response shape for the fair-value domain.
// ChartData is optional; when absent it is derived by downsampling Data.
type ModelPayload struct {
	Data      []TimePoint `json:"data"`
	Stats     *ModelStats `json:"stats"`
	ChartData []TimePoint `json:"chartData,omitempty"`
}

// ModelBundle is a fully resolved fair-value series ready for display:
// the raw series, its downsampled chart form, and its stats.
type ModelBundle struct {
	Data  []TimePoint
	Chart []TimePoint
	Stats ModelStats
}
