package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/stackquery/internal/client/gateway"
	"github.com/dmitrijs2005/stackquery/internal/common"
)

// Indirections swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var (
	errFailed          = errors.New("command failed")
	errNotLoggedIn     = errors.New("not logged in")
	errAlreadyLoggedIn = errors.New("already logged in")
)

// failureMessage is the generic retryable text, with the gateway's reason
// when it gave one.
func failureMessage(action string, gwErr *gateway.Error) string {
	if gwErr != nil && gwErr.Error() != "" {
		return fmt.Sprintf("%s failed: %s Please try again.", action, gwErr.Error())
	}
	return action + " failed. Please try again."
}

// Register prompts for name, email and password and creates an account.
// It does not sign in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res := a.auth.CreateAccount(ctx, name, email, string(password))
	if !res.Success {
		printlnFn(failureMessage("Registration", res.Err))
		return errFailed
	}

	printlnFn("Account created. You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in. Log out first.")
		return errAlreadyLoggedIn
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res := a.auth.Login(ctx, email, string(password))
	if !res.Success {
		printlnFn(failureMessage("Login", res.Err))
		return errFailed
	}

	printlnFn("Logged in as", a.auth.State().User().Name)
	return nil
}

// Logout signs out everywhere. When the server cannot be reached the
// session stays active locally.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return errNotLoggedIn
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	a.auth.Logout(ctx)
	if a.isLoggedIn() {
		printlnFn("Logout failed, you are still signed in. Please try again.")
		return errFailed
	}
	printlnFn("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	st := a.auth.State()
	if !st.Authenticated() {
		printlnFn("Not logged in.")
		return errNotLoggedIn
	}
	u := st.User()
	rep, _ := u.Prefs.Reputation()
	printlnFn(fmt.Sprintf("%s <%s> id=%s reputation=%g", u.Name, u.Email, u.ID, rep))
	return nil
}
