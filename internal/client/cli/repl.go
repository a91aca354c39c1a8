package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/customerconnect/internal/client/router"
)

type command struct {
	names  []string
	// route the command belongs to; the route guards apply before it runs.
	// Empty means available everywhere.
	route  string
	syntax string
	usage  string
	run    func(a *App, ctx context.Context, args []string) error
}

// commands is set in init because help reads it.
var commands []command

func init() {
	commands = []command{
		{names: []string{"help", "?"}, usage: "show available commands", run: (*App).help},
		{names: []string{"go", "open"}, syntax: "<path>", usage: "open a view, e.g. go /segments", run: (*App).goTo},
		{names: []string{"whoami"}, usage: "show the signed-in user", run: (*App).whoami},

		{names: []string{"login"}, route: router.Auth, syntax: "[email]", usage: "sign in with email and password", run: (*App).login},
		{names: []string{"register"}, route: router.Auth, usage: "create an account", run: (*App).register},
		{names: []string{"google"}, route: router.Auth, syntax: "[code|callback-url]", usage: "finish Google sign-in", run: (*App).google},
		{names: []string{"google-token"}, route: router.Auth, syntax: "<access-token>", usage: "sign in with a Google access token", run: (*App).googleToken},
		{names: []string{"logout"}, usage: "sign out", run: (*App).logout},

		{names: []string{"dashboard", "home"}, route: router.Dashboard, usage: "overview and recent campaigns", run: (*App).showDashboard},
		{names: []string{"customers"}, route: router.Customers, syntax: "[search]", usage: "list customers", run: (*App).showCustomers},
		{names: []string{"segments"}, route: router.Segments, usage: "list segments", run: (*App).showSegments},
		{names: []string{"segment-new"}, route: router.Segments, usage: "create a segment", run: (*App).createSegment},
		{names: []string{"segment-edit"}, route: router.Segments, syntax: "<id>", usage: "rename a segment or change its rules", run: (*App).editSegment},
		{names: []string{"segment-preview"}, route: router.Segments, syntax: "<rules>", usage: "count customers matching rules", run: (*App).previewSegment},
		{names: []string{"segment-delete"}, route: router.Segments, syntax: "<id>", usage: "delete a segment", run: (*App).deleteSegment},
		{names: []string{"campaigns"}, route: router.Campaigns, syntax: "[status]", usage: "list campaigns", run: (*App).showCampaigns},
		{names: []string{"campaign-new"}, route: router.Campaigns, usage: "create a campaign", run: (*App).createCampaign},
		{names: []string{"campaign-send"}, route: router.Campaigns, syntax: "<id>", usage: "send a campaign", run: (*App).sendCampaign},
		{names: []string{"campaign-delete"}, route: router.Campaigns, syntax: "<id>", usage: "delete a campaign", run: (*App).deleteCampaign},
		{names: []string{"analytics"}, route: router.Analytics, syntax: "[7d|30d|90d|1y]", usage: "campaign and customer analytics", run: (*App).showAnalytics},
		{names: []string{"ask", "ai"}, route: router.AIAssistant, syntax: "<question>", usage: "ask the AI assistant", run: (*App).ask},
		{names: []string{"profile"}, route: router.Profile, usage: "show your profile", run: (*App).showProfile},
		{names: []string{"profile-edit"}, route: router.Profile, usage: "edit your profile", run: (*App).editProfile},
		{names: []string{"settings"}, route: router.Settings, usage: "session and connection settings", run: (*App).showSettings},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		for _, n := range c.names {
			if n == name {
				return c, true
			}
		}
	}
	return command{}, false
}

// runREPL reads commands until "exit", end of input or ctx cancellation.
func (a *App) runREPL(ctx context.Context) {
	for ctx.Err() == nil {
		a.printf("cc %s%s> ", a.route, a.status())
		line, err := readLine(a.reader)
		if err != nil {
			a.println()
			return
		}
		if !a.exec(ctx, line) {
			return
		}
	}
}

// exec runs one input line and reports whether the REPL should go on.
func (a *App) exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	name, args := parts[0], parts[1:]

	if name == "exit" || name == "quit" {
		a.println("Bye!")
		return false
	}

	cmd, ok := lookupCommand(name)
	if !ok {
		a.println("Unknown command:", name)
		return true
	}

	if cmd.route == "" || a.enter(cmd.route) {
		a.report(cmd.run(a, ctx, args))
	}
	a.checkExpired()
	return true
}

// enter moves to route through the guards. It reports whether the route
// was actually entered.
func (a *App) enter(route string) bool {
	d := router.Resolve(route, a.isLoggedIn())
	a.route = d.Path
	if d.Path == route {
		return true
	}
	if d.Path == router.Auth {
		a.println("Please log in first (login, register or google)")
	} else {
		a.println("You are already signed in")
	}
	return false
}

// navigate opens path like a link click and renders the resulting view.
func (a *App) navigate(ctx context.Context, path string, args []string) {
	d := router.Resolve(path, a.isLoggedIn())
	if d.NotFound {
		a.printf("Page not found: %s\n", d.Path)
		return
	}
	if d.Redirected && d.Path == router.Auth {
		a.println("Please log in first (login, register or google)")
	}
	a.route = d.Path
	a.report(a.render(ctx, d.Path, args))
}

func (a *App) goTo(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: go <path>")
		return nil
	}
	a.navigate(ctx, args[0], args[1:])
	return nil
}

func (a *App) help(ctx context.Context, args []string) error {
	authed := a.isLoggedIn()

	a.println("Available commands:")
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, c := range commands {
		if c.route != "" && router.Resolve(c.route, authed).Path != c.route {
			continue
		}
		fmt.Fprintf(tw, "  %s %s\t%s\n", strings.Join(c.names, ", "), c.syntax, c.usage)
	}
	fmt.Fprintf(tw, "  exit, quit\tleave the program\n")
	_ = tw.Flush()

	if authed {
		var paths []string
		for _, r := range router.Routes() {
			if r.Access == router.Protected {
				paths = append(paths, r.Path)
			}
		}
		sort.Strings(paths)
		a.println("Views:", strings.Join(paths, " "))
	}
	return nil
}

func (a *App) status() string {
	s := a.session.Current()
	if s == nil {
		return ""
	}
	if s.IsAdmin() {
		return " (" + s.DisplayName + ", admin)"
	}
	return " (" + s.DisplayName + ")"
}
