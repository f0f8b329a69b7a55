package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"fintrack/internal/core"
)

func (a *App) runAccounts(ctx context.Context, args []string) error {
	if len(args) < 1 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		return a.accountsList(ctx)
	case "add":
		return a.accountsAdd(ctx, args[1:])
	case "update":
		return a.accountsUpdate(ctx, args[1:])
	case "rm":
		return a.accountsRemove(ctx, args[1:])
	default:
		return fmt.Errorf("unknown accounts subcommand %q", args[0])
	}
}

func (a *App) accountsList(ctx context.Context) error {
	if err := a.Accounts.Load(ctx); err != nil {
		return err
	}
	snap := a.Accounts.Snapshot()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE\tCURRENCY\tACTIVE")
	for _, acc := range snap.Accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%v\n",
			acc.ID, acc.Name, acc.Type, acc.Balance, acc.Currency, acc.IsActive)
	}
	fmt.Fprintf(w, "\ttotal (active)\t\t%.2f\t\t\n", a.Accounts.TotalBalance())
	return w.Flush()
}

func accountFlags(fs *flag.FlagSet) *core.AccountInput {
	in := &core.AccountInput{}
	fs.StringVar(&in.Name, "name", "", "account name")
	fs.StringVar((*string)(&in.Type), "type", "checking", "savings|checking|cash|credit|investment|other")
	fs.Float64Var(&in.Balance, "balance", 0, "opening balance")
	fs.StringVar(&in.Currency, "currency", "USD", "ISO currency code")
	fs.BoolVar(&in.IsActive, "active", true, "account is active")
	return in
}

func (a *App) accountsAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("accounts add", flag.ContinueOnError)
	in := accountFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	account, err := a.Accounts.Create(ctx, *in)
	if err != nil {
		return err
	}
	fmt.Printf("created account %s (%s)\n", account.Name, account.ID)
	return nil
}

func (a *App) accountsUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("accounts update", flag.ContinueOnError)
	id := fs.String("id", "", "account ID")
	in := accountFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing -id")
	}
	account, err := a.Accounts.Update(ctx, *id, *in)
	if err != nil {
		return err
	}
	fmt.Printf("updated account %s\n", account.ID)
	return nil
}

func (a *App) accountsRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("accounts rm", flag.ContinueOnError)
	id := fs.String("id", "", "account ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing -id")
	}
	if err := a.Accounts.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted account %s\n", *id)
	return nil
}
