package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"fintrack/internal/core"
)

func (a *App) runCategories(ctx context.Context, args []string) error {
	if len(args) < 1 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		return a.categoriesList(ctx)
	case "add":
		return a.categoriesAdd(ctx, args[1:])
	case "rm":
		return a.categoriesRemove(ctx, args[1:])
	case "init":
		return a.categoriesInit(ctx)
	default:
		return fmt.Errorf("unknown categories subcommand %q", args[0])
	}
}

func (a *App) categoriesList(ctx context.Context) error {
	if err := a.Categories.Load(ctx); err != nil {
		return err
	}
	snap := a.Categories.Snapshot()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tICON\tTYPE\tDEFAULT")
	for _, cat := range snap.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n",
			cat.ID, cat.Name, cat.Icon, cat.Type, cat.IsDefault)
	}
	return w.Flush()
}

func (a *App) categoriesAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories add", flag.ContinueOnError)
	in := core.CategoryInput{}
	fs.StringVar(&in.Name, "name", "", "category name")
	fs.StringVar(&in.Icon, "icon", "", "icon identifier")
	fs.StringVar((*string)(&in.Type), "type", "expense", "income|expense")
	if err := fs.Parse(args); err != nil {
		return err
	}
	category, err := a.Categories.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("created category %s (%s)\n", category.Name, category.ID)
	return nil
}

func (a *App) categoriesRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories rm", flag.ContinueOnError)
	id := fs.String("id", "", "category ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing -id")
	}
	if cat, ok := categoryByID(a, *id); ok && cat.IsDefault {
		return fmt.Errorf("category %q is a default and cannot be deleted", cat.Name)
	}
	if err := a.Categories.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted category %s\n", *id)
	return nil
}

func (a *App) categoriesInit(ctx context.Context) error {
	if err := a.Categories.Initialize(ctx); err != nil {
		return err
	}
	snap := a.Categories.Snapshot()
	fmt.Printf("categories ready (%d total)\n", len(snap.Categories))
	return nil
}

func categoryByID(a *App, id string) (core.Category, bool) {
	for _, cat := range a.Categories.Snapshot().Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return core.Category{}, false
}
