// Package models defines the wire DTOs exchanged with the CustomerConnect
// REST backend. Field names follow the backend's JSON.
package models

// AuthPayload is the success body of every /auth/* endpoint.
//
// Login and register return the user fields at the top level. The Google
// callback endpoint returns {token, user:{...}}; User holds that nested
// object. Use Flatten to get one view over both shapes.
type AuthPayload struct {
	ID      string       `json:"_id"`
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Token   string       `json:"token"`
	IsAdmin bool         `json:"isAdmin"`
	Picture string       `json:"picture,omitempty"`
	User    *AuthPayload `json:"user,omitempty"`
}

// Flatten merges the nested user object into the top level. Top-level
// values win; nested values only fill fields that are empty. IsAdmin is true
// when either level says so.
func (p AuthPayload) Flatten() AuthPayload {
	out := p
	out.User = nil
	if p.User == nil {
		return out
	}

	u := p.User.Flatten()
	if out.ID == "" {
		out.ID = u.ID
	}
	if out.Name == "" {
		out.Name = u.Name
	}
	if out.Email == "" {
		out.Email = u.Email
	}
	if out.Token == "" {
		out.Token = u.Token
	}
	if out.Picture == "" {
		out.Picture = u.Picture
	}
	out.IsAdmin = out.IsAdmin || u.IsAdmin
	return out
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type GoogleTokenRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type GoogleCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// ErrorBody is the backend's error envelope.
type ErrorBody struct {
	Message string `json:"message"`
}
