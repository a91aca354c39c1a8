package cli

import (
	"errors"
	"sort"

	"github.com/dmitrijs2005/customerconnect/internal/client/api"
	"github.com/dmitrijs2005/customerconnect/internal/client/session"
	"github.com/dmitrijs2005/customerconnect/internal/validation"
)

// report prints a command failure in user terms. Session expiry is left to
// checkExpired, which prints the notice once.
func (a *App) report(err error) {
	if err == nil || errors.Is(err, api.ErrSessionExpired) {
		return
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		names := make([]string, 0, len(verr.Fields))
		for name := range verr.Fields {
			names = append(names, name)
		}
		sort.Strings(names)

		a.println("Invalid input:")
		for _, name := range names {
			a.printf("  %s %s\n", name, verr.Fields[name])
		}
		return
	}

	a.println("Error:", errorText(err))
}

// errorText is the user-facing text of err: the backend message when there
// is one, a fixed text for connectivity problems, err itself otherwise.
func errorText(err error) string {
	var authErr *session.AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	if msg, ok := api.ServerMessage(err); ok {
		return msg
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "server unavailable, try again later"
	}
	return err.Error()
}
