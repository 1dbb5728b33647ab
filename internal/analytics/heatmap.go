package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/datewindow"
	"github.com/sprout-dev/sprout/internal/model"
)

// HeatmapCell is one day in the weekly heatmap grid. ColorLevel is an
// ordinal bucket 0-4 derived from the day's amount relative to the window's
// maximum. Padding cells at the tail of the last week have a zero Date.
type HeatmapCell struct {
	Date       time.Time
	Amount     decimal.Decimal
	Count      int
	Intensity  decimal.Decimal // amount / max, 0..1, two decimals
	ColorLevel int
}

var (
	quartile1 = decimal.NewFromFloat(0.25)
	quartile2 = decimal.NewFromFloat(0.5)
	quartile3 = decimal.NewFromFloat(0.75)
)

// WeeklyHeatmap buckets the trailing N days into rows of 7 cells. Levels are
// fixed quartiles of each day's share of the window's max spending day, with
// level 0 reserved for zero-spend days.
func WeeklyHeatmap(expenses []model.Expense, today datewindow.Window, days int) [][]HeatmapCell {
	series := DailySeries(expenses, today, days)

	maxSpend := decimal.Zero
	for _, p := range series {
		if p.Amount.GreaterThan(maxSpend) {
			maxSpend = p.Amount
		}
	}

	cells := make([]HeatmapCell, 0, len(series))
	for _, p := range series {
		cells = append(cells, heatCell(p, maxSpend))
	}

	// Pad the final week so every row has exactly 7 cells.
	for len(cells)%7 != 0 {
		cells = append(cells, HeatmapCell{Amount: decimal.Zero, Intensity: decimal.Zero})
	}

	grid := make([][]HeatmapCell, 0, (len(cells)+6)/7)
	for i := 0; i < len(cells); i += 7 {
		grid = append(grid, cells[i:i+7])
	}
	return grid
}

func heatCell(p DailyPoint, maxSpend decimal.Decimal) HeatmapCell {
	cell := HeatmapCell{
		Date:      p.Date,
		Amount:    p.Amount,
		Count:     p.Count,
		Intensity: decimal.Zero,
	}
	if p.Amount.IsZero() || !maxSpend.IsPositive() {
		return cell
	}

	intensity := p.Amount.Div(maxSpend)
	if intensity.GreaterThan(decimal.NewFromInt(1)) {
		intensity = decimal.NewFromInt(1)
	}
	cell.Intensity = intensity.Round(2)

	switch {
	case intensity.LessThanOrEqual(quartile1):
		cell.ColorLevel = 1
	case intensity.LessThanOrEqual(quartile2):
		cell.ColorLevel = 2
	case intensity.LessThanOrEqual(quartile3):
		cell.ColorLevel = 3
	default:
		cell.ColorLevel = 4
	}
	return cell
}
