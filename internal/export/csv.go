// Package export renders fair-value series as CSV downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"SoundTreasury/internal/model"
)

// Header is the column layout of an exported series.
var Header = []string{"Date", "Days", "Price", "Fair Value", "+2 SD", "-1 SD"}

// WriteCSV streams the series to w, one row per point. Dates are UTC
// ISO-8601 days; a missing price renders as an empty cell, never as zero.
func WriteCSV(w io.Writer, points []model.TimePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range points {
		price := ""
		if p.Price != nil {
			price = strconv.FormatFloat(*p.Price, 'f', -1, 64)
		}
		row := []string{
			p.Time().UTC().Format("2006-01-02"),
			strconv.FormatFloat(p.DaysSinceGenesis, 'f', 2, 64),
			price,
			strconv.FormatFloat(p.FairPrice, 'f', 2, 64),
			strconv.FormatFloat(p.UpperBand, 'f', 2, 64),
			strconv.FormatFloat(p.LowerBand, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a previously exported series. Fair value and bands come
// back at the exported two-decimal precision.
func ReadCSV(r io.Reader) ([]model.TimePoint, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv: missing header")
	}

	points := make([]model.TimePoint, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(Header) {
			return nil, fmt.Errorf("read csv: row %d has %d columns", i+2, len(row))
		}
		day, err := time.ParseInLocation("2006-01-02", row[0], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("read csv: row %d date: %w", i+2, err)
		}
		days, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("read csv: row %d days: %w", i+2, err)
		}
		var price *float64
		if row[2] != "" {
			v, err := strconv.ParseFloat(row[2], 64)
			if err != nil {
				return nil, fmt.Errorf("read csv: row %d price: %w", i+2, err)
			}
			price = &v
		}
		fair, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("read csv: row %d fair value: %w", i+2, err)
		}
		upper, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("read csv: row %d upper band: %w", i+2, err)
		}
		lower, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, fmt.Errorf("read csv: row %d lower band: %w", i+2, err)
		}
		points = append(points, model.TimePoint{
			Date:             day.UnixMilli(),
			DaysSinceGenesis: days,
			Price:            price,
			FairPrice:        fair,
			UpperBand:        upper,
			LowerBand:        lower,
		})
	}
	return points, nil
}
