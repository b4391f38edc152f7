// Package sector holds the immutable reference data for the peer-comparison
// dashboard: the tracked asset sets per industrial sector and the bundled
// static yearly price history used when live data is unavailable.
package sector

import "SoundTreasury/internal/model"

const (
	// StartYear is the first calendar year the comparison engine processes.
	StartYear = 2016
	// EndYear anchors the growth windows: all CAGRs are measured to the end
	// of this year.
	EndYear = 2025
	// LongWindowYears is the nominal span of the long growth window for
	// assets with history back to StartYear.
	LongWindowYears = 10
)

// Sector groups one asset set with its fallback history table.
type Sector struct {
	Key           string
	Label         string
	Assets        []model.AssetSpec
	staticHistory model.YearlyHistory
}

// StaticHistory returns a deep copy of the bundled history so callers can
// hand it to the comparison engine without touching the shared table.
func (s Sector) StaticHistory() model.YearlyHistory {
	out := make(model.YearlyHistory, len(s.staticHistory))
	for year, prices := range s.staticHistory {
		row := make(map[string]*model.PriceRange, len(prices))
		for sym, r := range prices {
			if r == nil {
				row[sym] = nil
				continue
			}
			c := *r
			row[sym] = &c
		}
		out[year] = row
	}
	return out
}

var sectors = []Sector{chemicals, agriculture}

// Keys lists the sector keys in display order.
func Keys() []string {
	keys := make([]string, len(sectors))
	for i, s := range sectors {
		keys[i] = s.Key
	}
	return keys
}

// ByKey looks up a sector by its key.
func ByKey(key string) (Sector, bool) {
	for _, s := range sectors {
		if s.Key == key {
			return s, true
		}
	}
	return Sector{}, false
}

func pr(start, end float64) *model.PriceRange {
	return &model.PriceRange{Start: start, End: end}
}

var chemicals = Sector{
	Key:   "chemicals",
	Label: "Chemicals",
	Assets: []model.AssetSpec{
		{Symbol: "BTC-USD", Name: "Bitcoin", Color: "#f7931a", QuoteSymbol: "CURRENCY:BTC-USD"},
		{Symbol: "DOW", Name: "Dow Inc.", Color: "#C8102E", QuoteSymbol: "NYSE:DOW", HistoryStartYear: 2019},
		{Symbol: "BASFY", Name: "BASF (ADR)", Color: "#004A96", QuoteSymbol: "OTCMKTS:BASFY"},
		{Symbol: "CE", Name: "Celanese", Color: "#008542", QuoteSymbol: "NYSE:CE"},
		{Symbol: "MEOH", Name: "Methanex", Color: "#582C83", QuoteSymbol: "NASDAQ:MEOH"},
		{Symbol: "FSCHX", Name: "Fidelity Chem", Color: "#71c7ec", QuoteSymbol: "MUTF:FSCHX"},
	},
	staticHistory: model.YearlyHistory{
		2016: {"BTC-USD": pr(434, 963), "DOW": nil, "BASFY": pr(16.5, 20.8), "CE": pr(66, 78.5), "MEOH": pr(27.77, 45.95), "FSCHX": pr(12.12, 14.91)},
		2017: {"BTC-USD": pr(963, 13860), "DOW": nil, "BASFY": pr(20.8, 27.5), "CE": pr(78.5, 107), "MEOH": pr(45.95, 54.15), "FSCHX": pr(14.91, 18.42)},
		2018: {"BTC-USD": pr(13860, 3740), "DOW": nil, "BASFY": pr(27.5, 17.2), "CE": pr(107, 90), "MEOH": pr(54.15, 64.49), "FSCHX": pr(18.42, 14.42)},
		2019: {"BTC-USD": pr(3740, 7200), "DOW": pr(51.63, 54.73), "BASFY": pr(17.2, 19.5), "CE": pr(90, 123), "MEOH": pr(64.49, 35.42), "FSCHX": pr(14.42, 11.95)},
		2020: {"BTC-USD": pr(7200, 28990), "DOW": pr(46.07, 55.5), "BASFY": pr(19.5, 17.8), "CE": pr(123, 129), "MEOH": pr(35.42, 45.45), "FSCHX": pr(11.95, 12.26)},
		2021: {"BTC-USD": pr(28990, 46200), "DOW": pr(55.5, 56.72), "BASFY": pr(17.8, 19.2), "CE": pr(129, 168), "MEOH": pr(45.45, 39.55), "FSCHX": pr(12.26, 16.76)},
		2022: {"BTC-USD": pr(46200, 16530), "DOW": pr(59.73, 50.39), "BASFY": pr(19.2, 13.5), "CE": pr(168, 102.2), "MEOH": pr(39.55, 37.86), "FSCHX": pr(16.76, 15.81)},
		2023: {"BTC-USD": pr(16530, 42260), "DOW": pr(59.35, 54.84), "BASFY": pr(13.5, 15.2), "CE": pr(102.2, 155.3), "MEOH": pr(37.86, 47.36), "FSCHX": pr(15.81, 15.41)},
		2024: {"BTC-USD": pr(42260, 98000), "DOW": pr(53.6, 40.13), "BASFY": pr(15.2, 12.44), "CE": pr(146.14, 68.76), "MEOH": pr(45.58, 49), "FSCHX": pr(14.78, 13.53)},
	},
}

var agriculture = Sector{
	Key:   "agriculture",
	Label: "Agriculture",
	Assets: []model.AssetSpec{
		{Symbol: "BTC-USD", Name: "Bitcoin", Color: "#f7931a", QuoteSymbol: "CURRENCY:BTC-USD"},
		{Symbol: "ADM", Name: "ADM", Color: "#005eb8", QuoteSymbol: "NYSE:ADM"},
		{Symbol: "BG", Name: "Bunge", Color: "#002d72", QuoteSymbol: "NYSE:BG"},
		{Symbol: "DE", Name: "Deere", Color: "#367C2B", QuoteSymbol: "NYSE:DE"},
		{Symbol: "MOS", Name: "Mosaic", Color: "#e37e26", QuoteSymbol: "NYSE:MOS"},
		{Symbol: "CF", Name: "CF Ind", Color: "#008542", QuoteSymbol: "NYSE:CF"},
	},
	staticHistory: model.YearlyHistory{
		2016: {"BTC-USD": pr(434, 963), "ADM": pr(26.23, 34.95), "BG": pr(46.11, 55.19), "DE": pr(65.43, 89.51), "MOS": pr(20.05, 25.41), "CF": pr(22.57, 24.79)},
		2017: {"BTC-USD": pr(963, 13860), "ADM": pr(33.88, 31.64), "BG": pr(52.87, 52.56), "DE": pr(93.54, 138.87), "MOS": pr(27.18, 22.75), "CF": pr(27.79, 34.77)},
		2018: {"BTC-USD": pr(13860, 3740), "ADM": pr(33.9, 33.31), "BG": pr(62.23, 43.1), "DE": pr(148.22, 134.66), "MOS": pr(24.23, 25.99), "CF": pr(34.69, 36.55)},
		2019: {"BTC-USD": pr(3740, 7200), "ADM": pr(36.5, 39), "BG": pr(44.42, 48.18), "DE": pr(148.82, 159.43), "MOS": pr(28.74, 19.38), "CF": pr(36.67, 41.21)},
		2020: {"BTC-USD": pr(7200, 28990), "ADM": pr(37.66, 43.85), "BG": pr(43.89, 57.29), "DE": pr(146.56, 252.2), "MOS": pr(17.82, 20.86), "CF": pr(34.77, 34.71)},
		2021: {"BTC-USD": pr(28990, 46200), "ADM": pr(43.51, 60.22), "BG": pr(57.17, 83.57), "DE": pr(271.49, 324.93), "MOS": pr(23.59, 35.92), "CF": pr(37.11, 64.97)},
		2022: {"BTC-USD": pr(46200, 16530), "ADM": pr(66.82, 84.3), "BG": pr(88.5, 91.33), "DE": pr(357.77, 411.42), "MOS": pr(36.6, 40.6), "CF": pr(63.22, 79.46)},
		2023: {"BTC-USD": pr(16530, 42260), "ADM": pr(75.22, 67.09), "BG": pr(90.71, 94.79), "DE": pr(406.88, 388.54), "MOS": pr(45.85, 33.74), "CF": pr(78.99, 75.69)},
		2024: {"BTC-USD": pr(42260, 98000), "ADM": pr(51.63, 48.62), "BG": pr(82.72, 75.13), "DE": pr(383.83, 417.83), "MOS": pr(29.17, 23.86), "CF": pr(71.89, 83.31)},
	},
}
