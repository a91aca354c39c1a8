// Package api is the REST client for the CustomerConnect backend.
//
// # Requests
//
// Every request carries Content-Type/Accept application/json and a fresh
// X-Request-ID. Authenticated requests additionally carry
// "Authorization: Bearer <token>", the token coming from the bound
// SessionSource (see Client.UseSession). The /auth/* endpoints are public:
// they never carry a bearer token.
//
// # Errors
//
//   - ErrSessionExpired: an authenticated request got HTTP 401. Before the
//     error is returned the SessionSource is expired (local logout) and the
//     query cache is flushed, whatever business call triggered it.
//   - ErrUnavailable: transport failure or timeout.
//   - *APIError: any other non-2xx answer, with the backend's "message".
//
// # Caching
//
// Successful authenticated GET bodies are kept in a go-cache query cache
// for the configured TTL. Any successful mutation, any 401, and
// InvalidateCache flush it.
package api
