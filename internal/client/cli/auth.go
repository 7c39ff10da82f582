package cli

import (
	"context"
	"fmt"

	"github.com/aquapure/backoffice/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and attempts to authenticate. The outcome is
// read back from the session store; on failure the reason is shown and the
// error state acknowledged so the next prompt starts clean.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if a.session.Login(ctx, email, password) {
		snap := a.session.State()
		fmt.Fprintf(a.out, "Signed in as %s (%s)\n", snap.User.Name, snap.User.Email)
		return nil
	}

	fmt.Fprintf(a.out, "Login failed: %s\n", a.session.State().Reason)
	a.session.ClearError()
	return nil
}

// Logout ends the session. The session store surfaces the confirmation
// notice itself.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx, true)
	return nil
}

// Whoami prints the current session state.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.session.State()
	switch snap.Status {
	case session.StatusAuthenticated:
		fmt.Fprintf(a.out, "%s <%s> role=%s\n", snap.User.Name, snap.User.Email, snap.User.Role)
	case session.StatusFailed:
		fmt.Fprintf(a.out, "not signed in (last failure: %s)\n", snap.Reason)
	default:
		fmt.Fprintln(a.out, "not signed in")
	}
	return nil
}
