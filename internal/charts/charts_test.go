package charts

import (
	"bytes"
	"testing"

	"fintrack/internal/core"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestTrend(t *testing.T) {
	g := NewGenerator()
	entries := []core.TrendEntry{
		{Period: "1/2024", Income: 2000, Expenses: 1400},
		{Period: "2/2024", Income: 2100, Expenses: 900},
		{Period: "3/2024", Income: 1800, Expenses: 2200},
	}

	png, err := g.Trend(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatalf("output is not a PNG")
	}
}

func TestTrendEmpty(t *testing.T) {
	png, err := NewGenerator().Trend(nil)
	if err != nil || png != nil {
		t.Fatalf("empty series: got %v bytes, err %v", len(png), err)
	}
}

func TestBreakdown(t *testing.T) {
	g := NewGenerator()
	breakdown := []core.CategoryBreakdown{
		{Category: "Food", Amount: 420, Percentage: 42},
		{Category: "Rent", Amount: 500, Percentage: 50},
		{Category: "Misc", Amount: 80, Percentage: 8},
	}

	png, err := g.Breakdown(breakdown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatalf("output is not a PNG")
	}
}

func TestBreakdownSkipsTinySlices(t *testing.T) {
	// Every slice is under the fold threshold, so nothing renders.
	png, err := NewGenerator().Breakdown([]core.CategoryBreakdown{
		{Category: "Dust", Amount: 0.5, Percentage: 0.4},
	})
	if err != nil || png != nil {
		t.Fatalf("got %v bytes, err %v", len(png), err)
	}
}

func TestBreakdownEmpty(t *testing.T) {
	png, err := NewGenerator().Breakdown(nil)
	if err != nil || png != nil {
		t.Fatalf("got %v bytes, err %v", len(png), err)
	}
}
