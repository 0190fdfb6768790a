package gateway

import "github.com/rs/zerolog"

// Notifier receives the user-facing notifications the response hook emits
// for every failure class. Injected so tests can assert exactly which
// notifications fired; the page/command that made the call still gets the
// error back and may render its own inline message on top.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator is invoked when the session becomes invalid and the user must
// log in again. In a browser this would be a redirect to the login route;
// the CLI implementation just reports that a new login is required.
type Navigator interface {
	GotoLogin()
}

// LogNotifier renders notifications through zerolog. It stands in for the
// toast/snackbar layer of a graphical client.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Success(msg string) {
	n.Log.Info().Str("notification", "success").Msg(msg)
}

func (n LogNotifier) Error(msg string) {
	n.Log.Warn().Str("notification", "error").Msg(msg)
}

// LogNavigator logs the forced-login transition.
type LogNavigator struct {
	Log zerolog.Logger
}

func (n LogNavigator) GotoLogin() {
	n.Log.Warn().Msg("session ended, please run 'blogctl auth login' again")
}

// NopNavigator ignores navigation. Useful for unauthenticated flows.
type NopNavigator struct{}

func (NopNavigator) GotoLogin() {}
