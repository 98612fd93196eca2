package cli

import (
	"context"
	"errors"
	"os"

	"github.com/itswijay/feedhub/internal/client/session"
	"github.com/itswijay/feedhub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates through the session store.
// Only reachable from an anonymous session; otherwise the guard prints its
// hint and nothing runs. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if !a.gate(a.anonGuard) {
		return nil
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

	if err := a.store.Login(ctx, email, string(password)); err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			printlnFn("Login discarded: you logged out in the meantime.")
			return err
		}
		printlnFn("Login failed:", describeErr(err))
		return err
	}

	printlnFn("Logged in as", a.store.Snapshot().User.Email)
	return nil
}

// Signup prompts for credentials and creates an account. On success the
// session store has already chained into a login, so the user lands
// authenticated.
func (a *App) Signup(ctx context.Context) error {
	if !a.gate(a.anonGuard) {
		return nil
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

	if err := a.store.Signup(ctx, email, string(password)); err != nil {
		printlnFn("Signup failed:", describeErr(err))
		return err
	}

	printlnFn("Account created. Logged in as", email)
	return nil
}

// Logout ends the session. The local state clears even when the server call
// fails, so this never leaves the user stuck logged in.
func (a *App) Logout(ctx context.Context) error {
	if !a.gate(a.authGuard) {
		return nil
	}
	a.store.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}
