// Package session owns "who is logged in" for the console.
//
// A Manager holds at most one current Session and is the only writer of the
// two persisted keys (token and user record). Its lifecycle is
//
//	UNINITIALIZED --Initialize--> AUTHENTICATED | ANONYMOUS
//	ANONYMOUS     --Login/Register/Google--> AUTHENTICATED
//	AUTHENTICATED --Login/Register/Google--> AUTHENTICATED (session replaced)
//	AUTHENTICATED --Logout | Expire--> ANONYMOUS
//
// Every successful authentication, whatever the flow, goes through the same
// payload-to-Session mapping and the same persistence step. A Session is
// either complete (non-empty id and token) or absent; a half-written or
// unreadable record in storage is treated as no session and wiped.
package session
