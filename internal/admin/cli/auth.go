package cli

import (
	"context"
	"errors"
	"os"

	"github.com/aghannam/manassa/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, display name, and password and creates an
// account on the remote backend. Without a reachable backend registration
// is refused: accounts only exist remotely.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.gw.SignUp(ctx, email, password, name); err != nil {
		switch {
		case errors.Is(err, common.ErrRemoteUnavailable):
			printlnFn("No remote backend reachable, registration is unavailable")
		case errors.Is(err, common.ErrEmailTaken):
			printlnFn("An account with this email already exists")
		default:
			printlnFn("Registration failed:", err.Error())
		}
		return err
	}

	printlnFn("Account created, you are signed in")
	return nil
}

// Login prompts for credentials and signs in against the remote backend.
// When the backend is unreachable the panel stays usable read-only over the
// local cache; only remote writes need the session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.gw.SignIn(ctx, email, password); err != nil {
		switch {
		case errors.Is(err, common.ErrRemoteUnavailable):
			printlnFn("No remote backend reachable, continuing with local data")
		case errors.Is(err, common.ErrUnauthenticated):
			printlnFn("Wrong email or password")
		default:
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	printlnFn("Signed in as", email)
	return nil
}

// Logout drops the session. Local data stays in place.
func (a *App) Logout(ctx context.Context) error {
	if err := a.gw.SignOut(ctx); err != nil && !errors.Is(err, common.ErrRemoteUnavailable) {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Signed out")
	return nil
}
