package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilekeeper/internal/client/client"
	"github.com/dmitrijs2005/profilekeeper/internal/client/profile"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

// getSimpleText and getPassword are test seams over the input helpers.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, password and name, then creates the account.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fields := map[string]string{}
	for _, f := range []struct{ key, prompt string }{
		{"first_name", "First name (optional)"},
		{"last_name", "Last name (optional)"},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			fields[f.key] = v
		}
	}

	if err := a.authService.Register(ctx, email, password, fields); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			printlnFn("An account with this email already exists.")
		}
		return err
	}

	printlnFn("Success! You can log in now.")
	return nil
}

// Login authenticates and seeds the local profile cache.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rec, err := a.authService.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrUnavailable):
			a.setMode(ModeOffline)
			printlnFn("Server unavailable, try again later.")
		case errors.Is(err, client.ErrUnauthorized):
			printlnFn("Invalid email or password.")
		}
		a.log.Warn(ctx, "login unsuccessful", "email", email, "error", err)
		return err
	}

	a.setEmail(rec[profile.KeyField])
	a.setMode(ModeOnline)
	a.router.RedirectTo(profile.DestinationProfile)
	printlnFn(fmt.Sprintf("Logged in as %s", rec[profile.KeyField]))
	return nil
}

// Logout wipes the local session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setEmail("")
	a.router.RedirectTo(profile.DestinationLogin)
	printlnFn("Logged out.")
	return nil
}
