// Package storage is the console's persisted key/value state: a single
// SQLite table (metadata) that survives restarts, the way a browser's
// localStorage survives page reloads.
//
// The session manager is the only writer of the session keys. Multi-key
// writes (SetMany, DeleteMany) run in one transaction, so a reader never
// observes the token without the user record or vice versa.
//
// Get returns (nil, nil) for a missing key.
package storage
