package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
)

func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var s models.DashboardStats
	if err := c.do(ctx, request{method: http.MethodGet, path: "/analytics/dashboard"}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Customers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	if err := c.do(ctx, request{method: http.MethodGet, path: "/customers"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Segments(ctx context.Context) ([]models.Segment, error) {
	var out []models.Segment
	if err := c.do(ctx, request{method: http.MethodGet, path: "/segments"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSegment(ctx context.Context, s models.Segment) (*models.Segment, error) {
	var out models.Segment
	if err := c.do(ctx, request{method: http.MethodPost, path: "/segments", body: s}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSegment(ctx context.Context, id string, s models.Segment) (*models.Segment, error) {
	var out models.Segment
	if err := c.do(ctx, request{method: http.MethodPut, path: "/segments/" + url.PathEscape(id), body: s}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSegment(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/segments/" + url.PathEscape(id)}, nil)
}

func (c *Client) PreviewSegment(ctx context.Context, criteria models.SegmentCriteria) (*models.SegmentPreview, error) {
	var out models.SegmentPreview
	body := map[string]any{"criteria": criteria}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/segments/preview", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	var out []models.Campaign
	if err := c.do(ctx, request{method: http.MethodGet, path: "/campaigns"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCampaign(ctx context.Context, d models.CampaignDraft) (*models.Campaign, error) {
	var out models.Campaign
	if err := c.do(ctx, request{method: http.MethodPost, path: "/campaigns", body: d}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendCampaign(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/campaigns/" + url.PathEscape(id) + "/send"}, nil)
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/campaigns/" + url.PathEscape(id)}, nil)
}

// Analytics fetches the report for the last days days.
func (c *Client) Analytics(ctx context.Context, days int) (*models.AnalyticsReport, error) {
	var out models.AnalyticsReport
	q := url.Values{"timeRange": []string{strconv.Itoa(days)}}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/analytics", query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error) {
	var out models.ChatReply
	if err := c.do(ctx, request{method: http.MethodPost, path: "/ai/chat", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users/profile"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, p models.Profile) error {
	return c.do(ctx, request{method: http.MethodPut, path: "/users/profile", body: p}, nil)
}
