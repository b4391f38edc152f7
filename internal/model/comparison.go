package model

// AssetSpec is immutable reference data for one tracked asset.
// HistoryStartYear is zero for assets with history from the comparison start
// year; later-listed assets carry their first full year so the long CAGR
// window can shrink to the available span.
type AssetSpec struct {
	Symbol           string `json:"symbol"`
	Name             string `json:"name"`
	Color            string `json:"color"`
	QuoteSymbol      string `json:"quoteSymbol,omitempty"`
	HistoryStartYear int    `json:"historyStartYear,omitempty"`
}

// PriceRange holds a year's opening and closing price for one asset.
type PriceRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// YearlyHistory maps calendar year to per-symbol price ranges. A nil range
// (or a missing symbol) means the asset has no data for that year, which is
// distinct from a zero price.
type YearlyHistory map[int]map[string]*PriceRange

// AssetReturn is one asset's result within a single year. Value is the
// percent change for the year, nil when either endpoint is missing.
type AssetReturn struct {
	AssetSpec
	Value      *float64 `json:"value"`
	StartPrice *float64 `json:"startPrice"`
	EndPrice   *float64 `json:"endPrice"`
}

// YearResult is one processed year: returns sorted best-first with all
// missing results after all numeric ones, and the winning asset (nil when
// every asset is missing that year).
type YearResult struct {
	Year    int           `json:"year"`
	Returns []AssetReturn `json:"returns"`
	Winner  *AssetSpec    `json:"winner"`
}

// ScoreboardEntry aggregates an asset's yearly wins and multi-window growth.
// Each CAGR is a percent, nil when an endpoint price is unavailable.
type ScoreboardEntry struct {
	AssetSpec
	WinCount        int      `json:"count"`
	CAGR2           *float64 `json:"cagr2"`
	CAGR3           *float64 `json:"cagr3"`
	CAGR5           *float64 `json:"cagr5"`
	CAGRLong        *float64 `json:"cagrLong"`
	LongWindowLabel string   `json:"longWindowLabel"`
	TotalReturn     *float64 `json:"totalReturn"`
}

// ComparisonSeries is the full output of the comparison engine for one
// sector: processed years plus the cross-year scoreboard.
type ComparisonSeries struct {
	Years      []YearResult      `json:"years"`
	Scoreboard []ScoreboardEntry `json:"scoreboard"`
}
