// Package charts renders expense report images.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/minhtran/troly_bot/internal/service"
)

// ChartGenerator renders report images for the bot.
type ChartGenerator struct{}

func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// ExpensePie draws one slice per item label. It returns nil bytes when the
// summary carries nothing worth drawing.
func (g *ChartGenerator) ExpensePie(summary *service.ExpenseSummary) ([]byte, error) {
	if summary == nil || summary.Total <= 0 || len(summary.ByItem) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(summary.ByItem))
	for _, item := range summary.ByItem {
		share := item.Amount / summary.Total * 100
		// Slivers under 1% only clutter the legend.
		if share <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.0f (%.1f%%)", item.Item, item.Amount, share),
			Value: item.Amount,
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 600,
		Values: values,
		Background: chart.Style{
			FillColor: chart.ColorWhite,
		},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render expense chart: %w", err)
	}
	return buf.Bytes(), nil
}
