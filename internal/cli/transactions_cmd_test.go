package cli

import (
	"testing"

	"fintrack/internal/core"
)

func TestPagerLine(t *testing.T) {
	cases := []struct {
		name string
		view core.PageView
		want string
	}{
		{"empty list", core.PageView{Page: 1, TotalPages: 0, Total: 0}, "no transactions"},
		{"middle page", core.PageView{Page: 2, TotalPages: 3, Total: 25}, "page 2/3, 25 transactions"},
		{"single page", core.PageView{Page: 1, TotalPages: 1, Total: 4}, "page 1/1, 4 transactions"},
	}
	for _, tc := range cases {
		if got := pagerLine(tc.view); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
