// Package common contains shared constants and sentinel errors used across
// CustomerConnect console components.
package common

// HTTP header names set on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Persisted storage keys owned by the session manager.
const (
	TokenStorageKey = "customerconnect_token"
	UserStorageKey  = "customerconnect_user"
)
