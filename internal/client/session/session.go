package session

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Session is the authenticated identity plus its bearer credential.
// The token is kept out of the JSON record; it is persisted under its own
// key.
type Session struct {
	UserID      string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	AvatarURL   string `json:"avatar"`
	Role        Role   `json:"role"`
	Token       string `json:"-"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

func (s *Session) complete() bool {
	return s != nil && s.UserID != "" && s.Token != ""
}

const placeholderBase = "https://ui-avatars.com/api/"

// Placeholder returns the avatar URL used when the backend supplies no
// picture. It depends only on name.
func Placeholder(name string) string {
	return placeholderBase + "?name=" + encodeURIComponent(name) + "&background=6366f1&color=ffffff"
}

// encodeURIComponent matches the browser function of the same name, so the
// URLs equal the ones the web dashboard produces.
func encodeURIComponent(s string) string {
	e := url.QueryEscape(s)
	e = strings.ReplaceAll(e, "+", "%20")
	for _, keep := range []string{"!", "'", "(", ")", "*"} {
		e = strings.ReplaceAll(e, url.QueryEscape(keep), keep)
	}
	return e
}

// fromPayload maps an /auth/* response to a Session. It is the single
// mapping used by every authentication flow.
func fromPayload(p models.AuthPayload) *Session {
	p = p.Flatten()

	role := RoleUser
	if p.IsAdmin {
		role = RoleAdmin
	}

	avatar := p.Picture
	if avatar == "" {
		avatar = Placeholder(p.Name)
	}

	return &Session{
		UserID:      p.ID,
		Email:       p.Email,
		DisplayName: p.Name,
		AvatarURL:   avatar,
		Role:        role,
		Token:       p.Token,
	}
}
