// Package compare turns a sparse year/asset price table into ranked yearly
// results and a multi-window growth scoreboard.
package compare

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"SoundTreasury/internal/model"
	"SoundTreasury/internal/sector"
)

// Build processes every year from sector.StartYear through sector.EndYear
// that is present in history. Missing prices stay missing: results carry nil,
// never zero. Returned slices are fresh and safe to hand to the presentation
// layer.
func Build(history model.YearlyHistory, assets []model.AssetSpec) *model.ComparisonSeries {
	years := make([]model.YearResult, 0, sector.EndYear-sector.StartYear+1)
	wins := make(map[string]int, len(assets))
	for _, a := range assets {
		wins[a.Symbol] = 0
	}

	for year := sector.StartYear; year <= sector.EndYear; year++ {
		yearData, ok := history[year]
		if !ok {
			continue
		}

		returns := make([]model.AssetReturn, 0, len(assets))
		for _, asset := range assets {
			r := yearData[asset.Symbol]
			if r == nil {
				returns = append(returns, model.AssetReturn{AssetSpec: asset})
				continue
			}
			start, end := r.Start, r.End
			pct := (end - start) / start * 100
			returns = append(returns, model.AssetReturn{
				AssetSpec:  asset,
				Value:      &pct,
				StartPrice: &start,
				EndPrice:   &end,
			})
		}

		// Numeric results descending, all missing results after them.
		// Stable, so ties keep the input asset order.
		sort.SliceStable(returns, func(i, j int) bool {
			if returns[i].Value == nil {
				return false
			}
			if returns[j].Value == nil {
				return true
			}
			return *returns[i].Value > *returns[j].Value
		})

		var winner *model.AssetSpec
		if len(returns) > 0 && returns[0].Value != nil {
			top := returns[0].AssetSpec
			winner = &top
			wins[top.Symbol]++
		}

		years = append(years, model.YearResult{Year: year, Returns: returns, Winner: winner})
	}

	return &model.ComparisonSeries{
		Years:      years,
		Scoreboard: buildScoreboard(history, assets, wins),
	}
}

func buildScoreboard(history model.YearlyHistory, assets []model.AssetSpec, wins map[string]int) []model.ScoreboardEntry {
	known := make(map[string]bool, len(assets))
	board := make([]model.ScoreboardEntry, 0, len(assets))
	for _, asset := range assets {
		known[asset.Symbol] = true
		entry := model.ScoreboardEntry{
			AssetSpec: asset,
			WinCount:  wins[asset.Symbol],
		}
		fillGrowth(&entry, history)
		board = append(board, entry)
	}

	// A win recorded for a symbol outside the asset set is an internal
	// inconsistency; drop it from the scoreboard instead of failing.
	for sym := range wins {
		if !known[sym] {
			logrus.WithField("component", "compare").Warnf("win count for unknown asset %q dropped", sym)
		}
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].WinCount > board[j].WinCount
	})
	return board
}

func fillGrowth(entry *model.ScoreboardEntry, history model.YearlyHistory) {
	end := endPrice(history, sector.EndYear, entry.Symbol)

	// Window anchors are fixed configuration, not a rolling policy.
	entry.CAGR2 = cagr(endPrice(history, sector.EndYear-2, entry.Symbol), end, 2)
	entry.CAGR3 = cagr(endPrice(history, sector.EndYear-3, entry.Symbol), end, 3)
	entry.CAGR5 = cagr(endPrice(history, sector.EndYear-5, entry.Symbol), end, 5)

	startYear, span, label := longWindow(entry.AssetSpec)
	entry.LongWindowLabel = label
	long := startPrice(history, startYear, entry.Symbol)
	entry.CAGRLong = cagr(long, end, span)
	if long != nil && end != nil && *long > 0 {
		total := (*end - *long) / *long * 100
		entry.TotalReturn = &total
	}
}

// longWindow resolves the long growth window for one asset. Nominally it is
// LongWindowYears anchored at StartYear; an asset listed later gets the span
// that its history actually covers, with a matching label.
func longWindow(a model.AssetSpec) (startYear, span int, label string) {
	if a.HistoryStartYear > sector.StartYear {
		span = sector.EndYear - a.HistoryStartYear
		return a.HistoryStartYear, span, fmt.Sprintf("%dY", span)
	}
	return sector.StartYear, sector.LongWindowYears, fmt.Sprintf("%dY", sector.LongWindowYears)
}

func cagr(start, end *float64, years int) *float64 {
	if start == nil || end == nil || *start <= 0 || years <= 0 {
		return nil
	}
	v := (math.Pow(*end / *start, 1/float64(years)) - 1) * 100
	return &v
}

func startPrice(history model.YearlyHistory, year int, symbol string) *float64 {
	if r := history[year][symbol]; r != nil {
		v := r.Start
		return &v
	}
	return nil
}

func endPrice(history model.YearlyHistory, year int, symbol string) *float64 {
	if r := history[year][symbol]; r != nil {
		v := r.End
		return &v
	}
	return nil
}
