package cli

import (
	"context"
	"flag"
	"fmt"

	"fintrack/internal/core"
)

func (a *App) runSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 8 characters)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := core.SignupInput{Name: *name, Email: *email, Password: *password}
	if err := a.Auth.Signup(ctx, in); err != nil {
		return err
	}
	snap := a.Auth.Snapshot()
	fmt.Printf("signed up and logged in as %s <%s>\n", snap.User.Name, snap.User.Email)
	return nil
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := core.LoginInput{Email: *email, Password: *password}
	if err := a.Auth.Login(ctx, in); err != nil {
		return err
	}
	snap := a.Auth.Snapshot()
	fmt.Printf("logged in as %s <%s>\n", snap.User.Name, snap.User.Email)
	return nil
}

func (a *App) runLogout(ctx context.Context) error {
	if err := a.Auth.Logout(ctx); err != nil {
		return err
	}
	a.Dashboard.Clear()
	fmt.Println("logged out")
	return nil
}

// runWhoami verifies the stored session against the backend. A 401
// clears it; the user gets told to log in again rather than an opaque
// failure.
func (a *App) runWhoami(ctx context.Context) error {
	if err := a.Auth.Refresh(ctx); err != nil {
		snap := a.Auth.Snapshot()
		if !snap.Authenticated {
			fmt.Println("not logged in")
			return nil
		}
		return err
	}
	snap := a.Auth.Snapshot()
	fmt.Printf("%s <%s>\n", snap.User.Name, snap.User.Email)
	return nil
}
