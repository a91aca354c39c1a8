// Package router resolves console routes and applies the authentication
// guards: protected routes send anonymous users to the auth view, and the
// auth view sends authenticated users to the dashboard.
package router

import "strings"

const (
	Auth        = "/auth"
	Root        = "/"
	Dashboard   = "/dashboard"
	Customers   = "/customers"
	Segments    = "/segments"
	Campaigns   = "/campaigns"
	Analytics   = "/analytics"
	AIAssistant = "/ai-assistant"
	Profile     = "/profile"
	Settings    = "/settings"
)

type Access int

const (
	// Protected routes require a session.
	Protected Access = iota
	// PublicOnly routes are shown only to anonymous users.
	PublicOnly
)

type Route struct {
	Path   string
	Title  string
	Access Access
}

var routes = []Route{
	{Path: Auth, Title: "Sign in", Access: PublicOnly},
	{Path: Dashboard, Title: "Dashboard", Access: Protected},
	{Path: Customers, Title: "Customers", Access: Protected},
	{Path: Segments, Title: "Segments", Access: Protected},
	{Path: Campaigns, Title: "Campaigns", Access: Protected},
	{Path: Analytics, Title: "Analytics", Access: Protected},
	{Path: AIAssistant, Title: "AI Assistant", Access: Protected},
	{Path: Profile, Title: "Profile", Access: Protected},
	{Path: Settings, Title: "Settings", Access: Protected},
}

var aliases = map[string]string{
	Root: Dashboard,
}

// Routes returns the route table in menu order.
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// Lookup finds a route by path, following aliases.
func Lookup(path string) (Route, bool) {
	path = Normalize(path)
	if target, ok := aliases[path]; ok {
		path = target
	}
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Normalize trims whitespace, query and trailing slashes, and adds the
// leading slash: "segments/" becomes "/segments".
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Decision is where navigation actually lands. Redirected is set only when a
// guard moved the navigation; aliases such as "/" and normalization are not
// redirects.
type Decision struct {
	Path       string
	Redirected bool
	NotFound   bool
}

// Resolve applies the guards for a navigation to path. A redirect target is
// final: it is never guarded again.
func Resolve(path string, authenticated bool) Decision {
	r, ok := Lookup(path)
	if !ok {
		return Decision{Path: Normalize(path), NotFound: true}
	}

	switch {
	case r.Access == Protected && !authenticated:
		return Decision{Path: Auth, Redirected: true}
	case r.Access == PublicOnly && authenticated:
		return Decision{Path: Dashboard, Redirected: true}
	}
	return Decision{Path: r.Path}
}

// Landing is the route shown after startup or a session change.
func Landing(authenticated bool) string {
	if authenticated {
		return Dashboard
	}
	return Auth
}
