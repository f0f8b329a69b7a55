package cli

import (
	"fmt"
	"os"

	"fintrack/internal/log"
)

const usage = `fintrack - personal finance tracker client

Usage:
  fintrack <command> [flags]

Commands:
  signup      Register a new account and sign in
  login       Sign in with email and password
  logout      Clear the local session
  whoami      Show the signed-in user
  accounts    Manage accounts (list, add, update, rm)
  categories  Manage categories (list, add, rm, init)
  tx          Manage transactions (list, add, update, rm)
  dashboard   Show the financial overview
  export      Export transactions to Google Sheets

Configuration comes from the environment (or a .env file); see
FINTRACK_API_URL, FINTRACK_SESSION_DB, FINTRACK_PAGE_SIZE.`

// Run dispatches a CLI invocation and returns the process exit code.
func Run(args []string) int {
	LoadEnvFile()
	logger := SetupLogger()

	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	ctx, cancel := SignalContext()
	defer cancel()

	app, err := NewApp(ctx, logger)
	if err != nil {
		logger.Error("startup failed", log.FieldError, err)
		return 1
	}
	defer app.Close()

	var cmdErr error
	switch args[0] {
	case "signup":
		cmdErr = app.runSignup(ctx, args[1:])
	case "login":
		cmdErr = app.runLogin(ctx, args[1:])
	case "logout":
		cmdErr = app.runLogout(ctx)
	case "whoami":
		cmdErr = app.runWhoami(ctx)
	case "accounts":
		cmdErr = app.runAccounts(ctx, args[1:])
	case "categories":
		cmdErr = app.runCategories(ctx, args[1:])
	case "tx":
		cmdErr = app.runTransactions(ctx, args[1:])
	case "dashboard":
		cmdErr = app.runDashboard(ctx, args[1:])
	case "export":
		cmdErr = app.runExport(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", args[0], usage)
		return 2
	}

	if cmdErr != nil {
		fmt.Fprintln(os.Stderr, "error:", cmdErr)
		return 1
	}
	return 0
}
