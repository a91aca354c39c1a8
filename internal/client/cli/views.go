package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
	"github.com/dmitrijs2005/customerconnect/internal/client/router"
	"github.com/dmitrijs2005/customerconnect/internal/client/services"
)

// render draws the view for a resolved route.
func (a *App) render(ctx context.Context, route string, args []string) error {
	switch route {
	case router.Auth:
		return a.showAuth(ctx, args)
	case router.Dashboard:
		return a.showDashboard(ctx, args)
	case router.Customers:
		return a.showCustomers(ctx, args)
	case router.Segments:
		return a.showSegments(ctx, args)
	case router.Campaigns:
		return a.showCampaigns(ctx, args)
	case router.Analytics:
		return a.showAnalytics(ctx, args)
	case router.AIAssistant:
		return a.showAssistant(ctx, args)
	case router.Profile:
		return a.showProfile(ctx, args)
	case router.Settings:
		return a.showSettings(ctx, args)
	}
	return nil
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) heading(title string) {
	a.println()
	a.println(title)
	a.println(strings.Repeat("=", len(title)))
}

func (a *App) showAuth(ctx context.Context, args []string) error {
	a.heading("Sign in to CustomerConnect")
	a.println("  login [email]           sign in with email and password")
	a.println("  register                create an account")
	a.println("  google <code|url>       finish Google sign-in")
	return nil
}

func (a *App) showDashboard(ctx context.Context, args []string) error {
	a.println("Loading dashboard...")
	ov, err := a.workspace.Dashboard(ctx)
	if err != nil {
		return err
	}

	a.heading("Dashboard")
	st := ov.Stats
	tw := a.table()
	fmt.Fprintf(tw, "Total customers\t%d\n", st.TotalCustomers)
	fmt.Fprintf(tw, "Active campaigns\t%d\n", st.ActiveCampaigns)
	fmt.Fprintf(tw, "Customer segments\t%d\n", st.CustomerSegments)
	fmt.Fprintf(tw, "Avg engagement\t%.1f%%\n", st.AvgEngagement)
	_ = tw.Flush()

	if len(st.CustomerGrowth) > 0 {
		parts := make([]string, 0, len(st.CustomerGrowth))
		for _, g := range st.CustomerGrowth {
			parts = append(parts, fmt.Sprintf("%s %d", g.Month, g.Customers))
		}
		a.println()
		a.println("Customer growth:", strings.Join(parts, ", "))
	}

	a.println()
	a.println("Recent campaigns:")
	a.campaignTable(ov.RecentCampaigns)

	if len(st.RecentActivities) > 0 {
		a.println()
		a.println("Recent activity:")
		for _, act := range st.RecentActivities {
			a.printf("  - %s (%s)\n", act.Action, act.Time)
		}
	}
	return nil
}

func (a *App) showCustomers(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	list, err := a.workspace.Customers(ctx, query)
	if err != nil {
		return err
	}

	a.heading("Customers")
	if len(list) == 0 {
		a.println("No customers found")
		return nil
	}

	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tLOCATION\tSPENT\tORDERS")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%d\n", c.ID, c.Name, c.Email, c.Location, c.TotalSpent, c.OrderCount)
	}
	_ = tw.Flush()
	a.printf("%d customer(s)\n", len(list))
	return nil
}

func (a *App) showSegments(ctx context.Context, args []string) error {
	list, err := a.workspace.Segments(ctx)
	if err != nil {
		return err
	}

	a.heading("Segments")
	if len(list) == 0 {
		a.println("No segments yet (segment-new to create one)")
		return nil
	}

	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tCUSTOMERS\tRULES")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.ID, s.Name, s.CustomerCount, formatCriteria(s.Criteria))
	}
	_ = tw.Flush()
	return nil
}

func formatCriteria(c models.SegmentCriteria) string {
	parts := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		parts = append(parts, r.Field+" "+r.Operator+" "+r.Value)
	}
	logic := c.Logic
	if logic == "" {
		logic = "AND"
	}
	return strings.Join(parts, " "+logic+" ")
}

func (a *App) showCampaigns(ctx context.Context, args []string) error {
	var status string
	if len(args) > 0 {
		status = args[0]
	}
	list, err := a.workspace.Campaigns(ctx, status)
	if err != nil {
		return err
	}

	a.heading("Campaigns")
	a.campaignTable(list)
	return nil
}

func (a *App) campaignTable(list []models.Campaign) {
	if len(list) == 0 {
		a.println("No campaigns")
		return
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSTATUS\tSEGMENT\tSENT\tOPENED\tCLICKED")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			c.ID, c.Name, c.Type, c.Status, c.Segment.Name, c.Stats.Sent, c.Stats.Opened, c.Stats.Clicked)
	}
	_ = tw.Flush()
}

func (a *App) showAnalytics(ctx context.Context, args []string) error {
	label := services.DefaultRange
	if len(args) > 0 {
		label = args[0]
	}
	rep, err := a.workspace.Analytics(ctx, label)
	if err != nil {
		return err
	}

	a.heading("Analytics (" + label + ")")
	tw := a.table()
	fmt.Fprintf(tw, "Customers\t%d\n", rep.TotalCustomers)
	fmt.Fprintf(tw, "Segments\t%d\n", rep.TotalSegments)
	fmt.Fprintf(tw, "Campaigns\t%d\n", rep.TotalCampaigns)
	fmt.Fprintf(tw, "Revenue\t%.2f\n", rep.TotalRevenue)
	_ = tw.Flush()

	if len(rep.CampaignPerformance) > 0 {
		a.println()
		tw = a.table()
		fmt.Fprintln(tw, "CHANNEL\tSENT\tDELIVERED\tOPENED\tCLICKED")
		for _, p := range rep.CampaignPerformance {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", p.Name, p.Sent, p.Delivered, p.Opened, p.Clicked)
		}
		_ = tw.Flush()
	}

	if len(rep.SegmentDistribution) > 0 {
		a.println()
		a.println("Segment distribution:")
		for _, s := range rep.SegmentDistribution {
			a.printf("  %s: %d\n", s.Name, s.Value)
		}
	}
	return nil
}

func (a *App) showAssistant(ctx context.Context, args []string) error {
	a.heading("AI Assistant")
	a.println("Ask about your customers, segments or campaigns, e.g.")
	a.println("  ask which customers have not ordered in 90 days?")
	return nil
}

func (a *App) showProfile(ctx context.Context, args []string) error {
	p, err := a.workspace.Profile(ctx)
	if err != nil {
		return err
	}

	a.heading("Profile")
	tw := a.table()
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	fmt.Fprintf(tw, "Email\t%s\n", p.Email)
	fmt.Fprintf(tw, "Phone\t%s\n", p.Phone)
	fmt.Fprintf(tw, "Location\t%s\n", p.Location)
	fmt.Fprintf(tw, "Title\t%s\n", p.Title)
	fmt.Fprintf(tw, "Department\t%s\n", p.Department)
	if s := a.session.Current(); s != nil {
		fmt.Fprintf(tw, "Avatar\t%s\n", s.AvatarURL)
	}
	_ = tw.Flush()
	return nil
}

func (a *App) showSettings(ctx context.Context, args []string) error {
	a.heading("Settings")
	tw := a.table()
	if s := a.session.Current(); s != nil {
		fmt.Fprintf(tw, "Signed in as\t%s <%s>\n", s.DisplayName, s.Email)
		fmt.Fprintf(tw, "Role\t%s\n", s.Role)
	}
	if c := a.config; c != nil {
		fmt.Fprintf(tw, "API\t%s\n", c.APIBaseURL)
		fmt.Fprintf(tw, "State file\t%s\n", c.StatePath)
		fmt.Fprintf(tw, "Request timeout\t%s\n", c.RequestTimeout)
		fmt.Fprintf(tw, "Cache TTL\t%s\n", c.CacheTTL)
	}
	_ = tw.Flush()
	a.println("Use 'logout' to sign out of this device.")
	return nil
}
