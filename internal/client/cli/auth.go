package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/customerconnect/internal/client/router"
	"github.com/dmitrijs2005/customerconnect/internal/client/session"
	"github.com/dmitrijs2005/customerconnect/internal/common"
	"github.com/dmitrijs2005/customerconnect/internal/validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNoAuthCode = errors.New("no authorization code found")

func (a *App) login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.signedIn(ctx, s)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.printf("Confirm password. ")
	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		return &validation.Error{Fields: map[string]string{"password": "does not match confirmation"}}
	}

	s, err := a.session.Register(ctx, email, string(password), name)
	if err != nil {
		return err
	}
	a.signedIn(ctx, s)
	return nil
}

// google completes the authorization-code flow. The user pastes either the
// code or the whole redirect URL the browser landed on.
func (a *App) google(ctx context.Context, args []string) error {
	input := strings.Join(args, " ")
	if input == "" {
		var err error
		input, err = getSimpleText(a.reader, "Paste the authorization code or the full callback URL", a.out)
		if err != nil {
			return err
		}
	}

	code, err := callbackCode(input)
	if err != nil {
		a.googleFailed(err)
		return nil
	}

	a.println("Completing your sign-in...")
	s, err := a.session.CompleteGoogleCallback(ctx, code)
	if err != nil {
		a.googleFailed(err)
		return nil
	}
	a.signedIn(ctx, s)
	return nil
}

// googleToken signs in with an access token from the implicit flow.
func (a *App) googleToken(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: google-token <access-token>")
		return nil
	}

	s, err := a.session.LoginWithGoogle(ctx, args[0])
	if err != nil {
		a.googleFailed(err)
		return nil
	}
	a.signedIn(ctx, s)
	return nil
}

func (a *App) googleFailed(err error) {
	a.logger.Info(context.Background(), "google sign-in failed", "error", err)
	a.printf("Authentication Failed: could not complete Google authentication (%s)\n", errorText(err))
	a.route = router.Auth
}

// callbackCode extracts the code from a pasted callback URL, or returns the
// input itself when it is a bare code.
func callbackCode(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errNoAuthCode
	}
	if !strings.Contains(input, "?") {
		// codes copied out of a URL may still be escaped, e.g. 4%2F0Ab
		if code, err := url.PathUnescape(input); err == nil {
			return code, nil
		}
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid callback URL: %w", err)
	}
	q := u.Query()
	if e := q.Get("error"); e != "" {
		return "", fmt.Errorf("google returned %q", e)
	}
	code := q.Get("code")
	if code == "" {
		return "", errNoAuthCode
	}
	return code, nil
}

func (a *App) signedIn(ctx context.Context, s *session.Session) {
	if a.invalidate != nil {
		a.invalidate()
	}
	a.expired.Store(false)
	a.printf("Welcome, %s!\n", s.DisplayName)
	a.navigate(ctx, router.Landing(true), nil)
}

func (a *App) logout(ctx context.Context, args []string) error {
	wasIn := a.isLoggedIn()
	err := a.session.Logout(ctx)
	if a.invalidate != nil {
		a.invalidate()
	}
	a.route = router.Auth
	if wasIn {
		a.println("Logged out")
	} else {
		a.println("Not signed in")
	}
	return err
}

func (a *App) whoami(ctx context.Context, args []string) error {
	s := a.session.Current()
	if s == nil {
		a.println("Not signed in")
		return nil
	}
	a.printf("%s <%s>\n", s.DisplayName, s.Email)
	a.printf("  id:     %s\n", s.UserID)
	a.printf("  role:   %s\n", s.Role)
	a.printf("  avatar: %s\n", s.AvatarURL)
	return nil
}
