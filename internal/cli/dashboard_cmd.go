package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"fintrack/internal/charts"
	"fintrack/internal/log"
	"fintrack/internal/state"
)

func (a *App) runDashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	rangeToken := fs.String("range", "month", "week|month|year")
	renderCharts := fs.Bool("charts", false, "write trend and breakdown charts as PNG files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// A failed sub-request still leaves the rest of the dashboard
	// renderable; report the error after showing what arrived.
	refreshErr := a.Dashboard.Refresh(ctx, *rangeToken)
	snap := a.Dashboard.Snapshot()

	if snap.HasSummary {
		s := snap.Summary
		fmt.Printf("Overview (%s)\n\n", snap.TimeRange)
		fmt.Printf("  income:        %12.2f\n", s.Income)
		fmt.Printf("  expenses:      %12.2f\n", s.Expenses)
		fmt.Printf("  net:           %12.2f\n", s.Net)
		fmt.Printf("  savings rate:  %11.1f%%\n", s.SavingsRate)
		fmt.Printf("  total balance: %12.2f\n", s.TotalBalance)

		if len(s.CategoryBreakdown) > 0 {
			fmt.Println("\nSpending by category")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, item := range s.CategoryBreakdown {
				fmt.Fprintf(w, "  %s\t%.2f\t%.1f%%\n", item.Category, item.Amount, item.Percentage)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}

		if len(s.RecentTransactions) > 0 {
			fmt.Println("\nRecent transactions")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, t := range s.RecentTransactions {
				fmt.Fprintf(w, "  %s\t%s\t%.2f\t%s\n",
					t.Date.Format("2006-01-02"), t.Type, t.Amount, t.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}

	if len(snap.Trends) > 0 {
		fmt.Println("\nIncome vs expenses")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  PERIOD\tINCOME\tEXPENSES\tSAVINGS")
		for _, entry := range snap.Trends {
			fmt.Fprintf(w, "  %s\t%.2f\t%.2f\t%.2f\n",
				entry.Period, entry.Income, entry.Expenses, entry.Savings())
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if *renderCharts {
		if err := a.renderChartFiles(snap); err != nil {
			a.Logger.Warn("chart rendering failed", log.FieldError, err)
		}
	}

	return refreshErr
}

func (a *App) renderChartFiles(snap state.DashboardSnapshot) error {
	if err := os.MkdirAll(a.Config.ChartsDir, 0755); err != nil {
		return err
	}
	generator := charts.NewGenerator()

	if png, err := generator.Trend(snap.Trends); err != nil {
		return err
	} else if png != nil {
		path := filepath.Join(a.Config.ChartsDir, "trend.png")
		if err := os.WriteFile(path, png, 0644); err != nil {
			return err
		}
		fmt.Println("wrote", path)
	}

	if snap.HasSummary {
		if png, err := generator.Breakdown(snap.Summary.CategoryBreakdown); err != nil {
			return err
		} else if png != nil {
			path := filepath.Join(a.Config.ChartsDir, "breakdown.png")
			if err := os.WriteFile(path, png, 0644); err != nil {
				return err
			}
			fmt.Println("wrote", path)
		}
	}
	return nil
}
