// Package cli provides the interactive CustomerConnect console.
//
// App wires configuration, the persisted session, the REST client and the
// workspace services behind a read-eval-print loop. Views are routes
// (/dashboard, /segments, ...); every command names the route it belongs to
// and passes the route guards before it runs, so anonymous users end up on
// /auth and signed-in users never see it.
//
// A 401 from any request ends the session. The REPL then prints
// "Session expired, please log in again" and returns to /auth.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
