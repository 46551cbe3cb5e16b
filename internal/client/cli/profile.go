package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/profilekeeper/internal/client/profile"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Profile prints the cached profile.
func (a *App) Profile(ctx context.Context) error {
	rec, err := a.profileService.Cached(ctx)
	if err != nil {
		return err
	}
	if rec == nil {
		printlnFn("Not logged in.")
		return ErrNotLoggedIn
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, rec[k])
	}
	return tw.Flush()
}

func (a *App) EditAddress(ctx context.Context) error {
	return a.edit(ctx, profile.AddressFieldSet())
}

func (a *App) ResetPassword(ctx context.Context) error {
	return a.edit(ctx, profile.CredentialFieldSet())
}

// edit drives one session of fs: prompt every field, then save or cancel.
// A failed save re-prompts with the values entered so far. A successful save
// returns once the session has redirected.
func (a *App) edit(ctx context.Context, fs profile.FieldSet) error {
	s := a.profileService.Open(ctx, fs, a.router, nil)
	if s == nil {
		printlnFn("Please log in first.")
		return ErrNotLoggedIn
	}
	defer s.Close()

	a.router.RedirectTo(profile.DestinationProfile + "/" + fs.Name)

	for {
		if err := a.fill(s); err != nil {
			s.Cancel()
			return err
		}

		choice, err := getSimpleText(a.reader, "Type 'save' to submit or 'cancel' to discard", a.out)
		if err != nil {
			s.Cancel()
			return err
		}
		if !strings.EqualFold(choice, "save") {
			s.Cancel()
			printlnFn("Changes discarded.")
			return nil
		}

		redirected := a.router.Next()
		snap := s.Submit(ctx)
		printlnFn(snap.Message)

		switch snap.Status {
		case profile.StatusSucceeded:
			select {
			case <-redirected:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		case profile.StatusFailed:
			continue
		default:
			return nil
		}
	}
}

// fill prompts each field of the session in order.
func (a *App) fill(s *profile.Session) error {
	current := s.Snapshot().Fields

	for _, f := range s.FieldSet().Fields {
		label := fieldLabel(f.Name)

		if f.Secret {
			pw, err := getPassword(a.out, label)
			if err != nil {
				return err
			}
			value := string(pw)
			common.WipeByteArray(pw)
			if err := s.SetField(f.Name, value); err != nil {
				return err
			}
			continue
		}

		value, err := getWithDefault(a.reader, label, current[f.Name], a.out)
		if err != nil {
			return err
		}
		if err := s.SetField(f.Name, value); err != nil {
			return err
		}
	}
	return nil
}

var getWithDefault = GetWithDefault

// fieldLabel turns "confirmPassword" or "first_name" into "Confirm password"
// and "First name".
func fieldLabel(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
			b.WriteRune(r + ('a' - 'A'))
		case i == 0 && r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
