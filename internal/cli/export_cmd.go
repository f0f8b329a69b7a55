package cli

import (
	"context"
	"flag"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/export"
)

func (a *App) runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	spreadsheetID := fs.String("spreadsheet", a.Config.SpreadsheetID, "target spreadsheet id")
	sheetName := fs.String("sheet", a.Config.SheetName, "target sheet name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *spreadsheetID == "" {
		return fmt.Errorf("no spreadsheet id: pass -spreadsheet or set FINTRACK_SPREADSHEET_ID")
	}

	exporter, err := export.NewSheetsExporter(ctx, *spreadsheetID, *sheetName, a.Logger)
	if err != nil {
		return err
	}

	if err := a.Transactions.Load(ctx, core.FilterSpec{}); err != nil {
		return err
	}
	snap := a.Transactions.Snapshot()

	n, err := exporter.Export(ctx, snap.Transactions)
	if err != nil {
		return err
	}
	fmt.Printf("exported %d transactions to %s\n", n, *spreadsheetID)
	return nil
}
