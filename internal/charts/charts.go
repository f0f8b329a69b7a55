// Package charts renders the dashboard's trend and category-breakdown
// views as PNG images for the terminal front-end.
package charts

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"

	"fintrack/internal/core"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Trend renders income vs expenses per period bucket as a line chart.
// Returns (nil, nil) when there is nothing to draw.
func (g *Generator) Trend(entries []core.TrendEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	xValues := make([]float64, len(entries))
	incomeValues := make([]float64, len(entries))
	expenseValues := make([]float64, len(entries))
	savingsValues := make([]float64, len(entries))
	ticks := make([]chart.Tick, len(entries))

	for i, e := range entries {
		xValues[i] = float64(i)
		incomeValues[i] = e.Income
		expenseValues[i] = e.Expenses
		savingsValues[i] = e.Savings()
		ticks[i] = chart.Tick{Value: float64(i), Label: e.Period}
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Style: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Income",
				XValues: xValues,
				YValues: incomeValues,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Expenses",
				XValues: xValues,
				YValues: expenseValues,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Savings",
				XValues: xValues,
				YValues: savingsValues,
				Style: chart.Style{
					StrokeColor:     chart.ColorBlue,
					StrokeWidth:     2,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{FontSize: 12, FontColor: chart.ColorBlack}),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// Breakdown renders the spending-by-category pie. Slices under one
// percent are folded away to keep labels readable.
func (g *Generator) Breakdown(breakdown []core.CategoryBreakdown) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(breakdown))
	for _, item := range breakdown {
		if item.Percentage <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.2f (%.1f%%)", item.Category, item.Amount, item.Percentage),
			Value: item.Amount,
			Style: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  "Spending by category",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render breakdown chart: %w", err)
	}
	return buffer.Bytes(), nil
}
