package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"fintrack/internal/core"
)

func (a *App) runTransactions(ctx context.Context, args []string) error {
	if len(args) < 1 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		return a.transactionsList(ctx, args[1:])
	case "add":
		return a.transactionsAdd(ctx, args[1:])
	case "update":
		return a.transactionsUpdate(ctx, args[1:])
	case "rm":
		return a.transactionsRemove(ctx, args[1:])
	default:
		return fmt.Errorf("unknown tx subcommand %q", args[0])
	}
}

func (a *App) transactionsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx list", flag.ContinueOnError)
	search := fs.String("search", "", "substring of the description")
	txType := fs.String("type", "", "income|expense|transfer")
	category := fs.String("category", "", "category ID")
	account := fs.String("account", "", "account ID")
	division := fs.String("division", "", "personal|office")
	start := fs.String("from", "", "start date (YYYY-MM-DD, inclusive)")
	end := fs.String("to", "", "end date (YYYY-MM-DD, inclusive)")
	sortField := fs.String("sort", "date", "date|type|amount")
	sortDir := fs.String("dir", "desc", "asc|desc")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := core.FilterSpec{
		Search:     *search,
		Type:       core.TransactionType(*txType),
		CategoryID: *category,
		AccountID:  *account,
		Division:   core.Division(*division),
	}
	var err error
	if filter.StartDate, err = parseDateFlag(*start); err != nil {
		return fmt.Errorf("invalid -from: %w", err)
	}
	if filter.EndDate, err = parseDateFlag(*end); err != nil {
		return fmt.Errorf("invalid -to: %w", err)
	}

	// Fetch the server-filtered list, then page locally.
	if err := a.Transactions.Load(ctx, filter); err != nil {
		return err
	}
	a.Transactions.SetSort(core.SortSpec{
		Field:     core.SortField(*sortField),
		Direction: core.SortDirection(*sortDir),
	})
	view := a.Transactions.Page(*page)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tDESCRIPTION\tDIVISION\tTAGS")
	for _, t := range view.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			t.ID, t.Date.Format("2006-01-02"), t.Type, t.Amount,
			t.Description, t.Division, strings.Join(t.Tags, ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println(pagerLine(view))
	return nil
}

func pagerLine(view core.PageView) string {
	if view.Total == 0 {
		return "no transactions"
	}
	return fmt.Sprintf("page %d/%d, %d transactions", view.Page, view.TotalPages, view.Total)
}

func transactionFlags(fs *flag.FlagSet) (*core.TransactionInput, *string, *string) {
	in := &core.TransactionInput{}
	fs.StringVar((*string)(&in.Type), "type", "expense", "income|expense|transfer")
	fs.Float64Var(&in.Amount, "amount", 0, "amount (positive)")
	fs.StringVar(&in.Description, "desc", "", "description")
	fs.StringVar(&in.CategoryID, "category", "", "category ID (not for transfers)")
	fs.StringVar(&in.AccountID, "account", "", "source account ID")
	fs.StringVar(&in.ToAccountID, "to-account", "", "destination account ID (transfers)")
	fs.StringVar((*string)(&in.Division), "division", "personal", "personal|office")
	fs.BoolVar(&in.IsRecurring, "recurring", false, "mark as recurring")
	fs.StringVar((*string)(&in.RecurringPattern), "pattern", "", "daily|weekly|monthly|yearly")
	date := fs.String("date", "", "date (YYYY-MM-DD, default today)")
	tags := fs.String("tags", "", "comma-separated tags")
	return in, date, tags
}

func fillTransactionInput(in *core.TransactionInput, date, tags string) error {
	if date == "" {
		in.Date = time.Now()
	} else {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
		in.Date = parsed
	}
	if tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				in.Tags = append(in.Tags, trimmed)
			}
		}
	}
	return nil
}

func (a *App) transactionsAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx add", flag.ContinueOnError)
	in, date, tags := transactionFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := fillTransactionInput(in, *date, *tags); err != nil {
		return err
	}
	transaction, err := a.Transactions.Create(ctx, *in)
	if err != nil {
		return err
	}
	fmt.Printf("created transaction %s (%.2f %s)\n", transaction.ID, transaction.Amount, transaction.Type)
	return nil
}

func (a *App) transactionsUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx update", flag.ContinueOnError)
	id := fs.String("id", "", "transaction ID")
	in, date, tags := transactionFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing -id")
	}
	if err := fillTransactionInput(in, *date, *tags); err != nil {
		return err
	}
	if existing, ok := a.Transactions.Get(*id); ok && !existing.Editable(time.Now()) {
		return fmt.Errorf("transaction %s is older than %v and no longer editable", *id, core.EditWindow)
	}
	transaction, err := a.Transactions.Update(ctx, *id, *in)
	if err != nil {
		return err
	}
	fmt.Printf("updated transaction %s\n", transaction.ID)
	return nil
}

func (a *App) transactionsRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx rm", flag.ContinueOnError)
	id := fs.String("id", "", "transaction ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing -id")
	}
	if err := a.Transactions.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted transaction %s\n", *id)
	return nil
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
