package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
	"github.com/dmitrijs2005/customerconnect/internal/client/services"
)

const rulesHelp = `Rules are "field operator value", joined by AND or OR, e.g.
  totalSpent >= 1000 AND location contains Riga
Fields: totalSpent, orderCount, visits, lastOrderDate, location, email, phone, createdAt
Operators: eq ne gt gte lt lte contains startsWith (or = != > >= < <=)`

func (a *App) createSegment(ctx context.Context, args []string) error {
	name, err := getSimpleText(a.reader, "Segment name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	a.println(rulesHelp)
	expr, err := getSimpleText(a.reader, "Rules", a.out)
	if err != nil {
		return err
	}

	criteria, err := services.ParseCriteria(expr)
	if err != nil {
		return err
	}

	seg, err := a.workspace.CreateSegment(ctx, models.Segment{Name: name, Description: description, Criteria: criteria})
	if err != nil {
		return err
	}
	a.printf("Segment created: %s (%s)\n", seg.Name, seg.ID)
	return nil
}

func (a *App) editSegment(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: segment-edit <id>")
		return nil
	}
	seg, err := a.workspace.Segment(ctx, args[0])
	if err != nil {
		return err
	}

	name, err := GetTextWithDefault(a.reader, "Segment name", seg.Name, a.out)
	if err != nil {
		return err
	}
	description, err := GetTextWithDefault(a.reader, "Description", seg.Description, a.out)
	if err != nil {
		return err
	}
	a.println(rulesHelp)
	expr, err := GetTextWithDefault(a.reader, "Rules", formatCriteria(seg.Criteria), a.out)
	if err != nil {
		return err
	}

	criteria, err := services.ParseCriteria(expr)
	if err != nil {
		return err
	}

	updated, err := a.workspace.UpdateSegment(ctx, seg.ID, models.Segment{Name: name, Description: description, Criteria: criteria})
	if err != nil {
		return err
	}
	a.printf("Segment updated: %s (%s)\n", updated.Name, updated.ID)
	return nil
}

func (a *App) previewSegment(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: segment-preview <rules>")
		a.println(rulesHelp)
		return nil
	}

	criteria, err := services.ParseCriteria(strings.Join(args, " "))
	if err != nil {
		return err
	}
	p, err := a.workspace.PreviewSegment(ctx, criteria)
	if err != nil {
		return err
	}

	a.printf("%d customer(s) match %s\n", p.Count, formatCriteria(criteria))
	for _, c := range p.Customers {
		a.printf("  %s <%s>\n", c.Name, c.Email)
	}
	return nil
}

func (a *App) deleteSegment(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: segment-delete <id>")
		return nil
	}
	if err := a.workspace.DeleteSegment(ctx, args[0]); err != nil {
		return err
	}
	a.println("Segment deleted")
	return nil
}

func (a *App) createCampaign(ctx context.Context, args []string) error {
	var d models.CampaignDraft
	var err error

	if d.Name, err = getSimpleText(a.reader, "Campaign name", a.out); err != nil {
		return err
	}
	if d.Description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}
	if d.Type, err = GetTextWithDefault(a.reader, "Type (email, sms, push)", "email", a.out); err != nil {
		return err
	}
	if d.SegmentID, err = getSimpleText(a.reader, "Segment ID (see 'segments')", a.out); err != nil {
		return err
	}
	if d.Type == "email" {
		if d.Message.Subject, err = getSimpleText(a.reader, "Subject", a.out); err != nil {
			return err
		}
	}
	if d.Message.Content, err = GetMultiline(a.reader, "Message", a.out); err != nil {
		return err
	}
	if d.ScheduledDate, err = getSimpleText(a.reader, "Schedule (e.g. 2024-06-01T10:00, empty for draft)", a.out); err != nil {
		return err
	}

	c, err := a.workspace.CreateCampaign(ctx, d)
	if err != nil {
		return err
	}
	a.printf("Campaign created: %s (%s, %s)\n", c.Name, c.ID, c.Status)
	return nil
}

func (a *App) sendCampaign(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: campaign-send <id>")
		return nil
	}
	if err := a.workspace.SendCampaign(ctx, args[0]); err != nil {
		return err
	}
	a.println("Campaign sent")
	return nil
}

func (a *App) deleteCampaign(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: campaign-delete <id>")
		return nil
	}
	if err := a.workspace.DeleteCampaign(ctx, args[0]); err != nil {
		return err
	}
	a.println("Campaign deleted")
	return nil
}

func (a *App) ask(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		var err error
		if query, err = getSimpleText(a.reader, "Your question", a.out); err != nil {
			return err
		}
	}

	a.println("Thinking...")
	answer, err := a.workspace.Ask(ctx, query)
	if err != nil {
		return err
	}
	a.println(answer)
	return nil
}

func (a *App) editProfile(ctx context.Context, args []string) error {
	p, err := a.workspace.Profile(ctx)
	if err != nil {
		return err
	}

	fields := []struct {
		prompt string
		value  *string
	}{
		{"Name", &p.Name},
		{"Email", &p.Email},
		{"Phone", &p.Phone},
		{"Location", &p.Location},
		{"Title", &p.Title},
		{"Department", &p.Department},
	}
	for _, f := range fields {
		v, err := GetTextWithDefault(a.reader, f.prompt, *f.value, a.out)
		if err != nil {
			return err
		}
		*f.value = v
	}

	if err := a.workspace.UpdateProfile(ctx, *p); err != nil {
		return err
	}
	a.println("Profile updated")
	return nil
}
