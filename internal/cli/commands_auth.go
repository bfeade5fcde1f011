package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/storelab/shopfront/internal/domain"
)

func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (min 8 characters)")
	name := fs.String("name", "", "full name (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.API.Register(ctx, domain.RegisterRequest{
		Email:    *email,
		Password: *password,
		FullName: *name,
	})
	if err != nil {
		return err
	}

	// Registering logs the new account in right away.
	a.Session.SetToken(res.AccessToken)
	a.Log.Info().Str("email", *email).Msg("account created")
	success(a.Out, fmt.Sprintf("account created and logged in as %s", *email))
	return nil
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.API.Login(ctx, domain.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	a.Session.SetToken(res.AccessToken)
	success(a.Out, fmt.Sprintf("logged in as %s", *email))
	return nil
}

func (a *App) runLogout() error {
	a.Session.Clear()
	success(a.Out, "logged out")
	return nil
}
