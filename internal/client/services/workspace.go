package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
	"github.com/dmitrijs2005/customerconnect/internal/common"
	"github.com/dmitrijs2005/customerconnect/internal/logging"
	"github.com/dmitrijs2005/customerconnect/internal/validation"
)

// CRM is the authenticated backend surface. *api.Client implements it.
type CRM interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	Customers(ctx context.Context) ([]models.Customer, error)
	Segments(ctx context.Context) ([]models.Segment, error)
	CreateSegment(ctx context.Context, s models.Segment) (*models.Segment, error)
	UpdateSegment(ctx context.Context, id string, s models.Segment) (*models.Segment, error)
	DeleteSegment(ctx context.Context, id string) error
	PreviewSegment(ctx context.Context, criteria models.SegmentCriteria) (*models.SegmentPreview, error)
	Campaigns(ctx context.Context) ([]models.Campaign, error)
	CreateCampaign(ctx context.Context, d models.CampaignDraft) (*models.Campaign, error)
	SendCampaign(ctx context.Context, id string) error
	DeleteCampaign(ctx context.Context, id string) error
	Analytics(ctx context.Context, days int) (*models.AnalyticsReport, error)
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error)
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p models.Profile) error
}

// RecentCampaignsLimit bounds the campaign list on the dashboard.
const RecentCampaignsLimit = 5

type WorkspaceService struct {
	api    CRM
	logger logging.Logger
}

func NewWorkspaceService(api CRM, logger logging.Logger) *WorkspaceService {
	return &WorkspaceService{api: api, logger: logger.With("component", "workspace")}
}

// Overview is the dashboard view model.
type Overview struct {
	Stats           *models.DashboardStats
	RecentCampaigns []models.Campaign
}

// Dashboard loads stats and campaigns concurrently. The first failure
// cancels the other request.
func (s *WorkspaceService) Dashboard(ctx context.Context) (*Overview, error) {
	var (
		stats     *models.DashboardStats
		campaigns []models.Campaign
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.api.DashboardStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		campaigns, err = s.api.Campaigns(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	return &Overview{Stats: stats, RecentCampaigns: recent(campaigns, RecentCampaignsLimit)}, nil
}

func recent(campaigns []models.Campaign, n int) []models.Campaign {
	out := append([]models.Campaign(nil), campaigns...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Customers lists customers whose name, email or location contains query
// (case-insensitive). An empty query returns everyone.
func (s *WorkspaceService) Customers(ctx context.Context, query string) ([]models.Customer, error) {
	all, err := s.api.Customers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	var out []models.Customer
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.Location), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *WorkspaceService) Segments(ctx context.Context) ([]models.Segment, error) {
	out, err := s.api.Segments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	return out, nil
}

// CreateSegment validates the segment and its rules before sending it.
func (s *WorkspaceService) CreateSegment(ctx context.Context, seg models.Segment) (*models.Segment, error) {
	if seg.Criteria.Logic == "" {
		seg.Criteria.Logic = "AND"
	}
	if err := validation.Validate(seg); err != nil {
		return nil, err
	}

	created, err := s.api.CreateSegment(ctx, seg)
	if err != nil {
		return nil, fmt.Errorf("create segment: %w", err)
	}
	s.logger.Info(ctx, "segment created", "segment_id", created.ID, "rules", len(seg.Criteria.Rules))
	return created, nil
}

// Segment finds a segment by id in the segment list.
func (s *WorkspaceService) Segment(ctx context.Context, id string) (*models.Segment, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	list, err := s.Segments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("segment %s: %w", id, common.ErrorNotFound)
}

func (s *WorkspaceService) UpdateSegment(ctx context.Context, id string, seg models.Segment) (*models.Segment, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if seg.Criteria.Logic == "" {
		seg.Criteria.Logic = "AND"
	}
	if err := validation.Validate(seg); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateSegment(ctx, id, seg)
	if err != nil {
		return nil, fmt.Errorf("update segment %s: %w", id, err)
	}
	s.logger.Info(ctx, "segment updated", "segment_id", id, "rules", len(seg.Criteria.Rules))
	return updated, nil
}

func (s *WorkspaceService) PreviewSegment(ctx context.Context, criteria models.SegmentCriteria) (*models.SegmentPreview, error) {
	if criteria.Logic == "" {
		criteria.Logic = "AND"
	}
	if err := validation.Validate(criteria); err != nil {
		return nil, err
	}

	out, err := s.api.PreviewSegment(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("preview segment: %w", err)
	}
	return out, nil
}

func (s *WorkspaceService) DeleteSegment(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.api.DeleteSegment(ctx, id); err != nil {
		return fmt.Errorf("delete segment %s: %w", id, err)
	}
	return nil
}

// Campaigns lists campaigns, optionally only those with the given status.
func (s *WorkspaceService) Campaigns(ctx context.Context, status string) ([]models.Campaign, error) {
	all, err := s.api.Campaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	if status == "" {
		return all, nil
	}

	var out []models.Campaign
	for _, c := range all {
		if strings.EqualFold(c.Status, status) {
			out = append(out, c)
		}
	}
	return out, nil
}

// CreateCampaign sends a new campaign. Status is derived from the schedule:
// scheduled when a date is set, draft otherwise.
func (s *WorkspaceService) CreateCampaign(ctx context.Context, d models.CampaignDraft) (*models.Campaign, error) {
	d.Status = "draft"
	if d.ScheduledDate != "" {
		d.Status = "scheduled"
	}
	if err := validation.Validate(d); err != nil {
		return nil, err
	}

	created, err := s.api.CreateCampaign(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	s.logger.Info(ctx, "campaign created", "campaign_id", created.ID, "status", d.Status)
	return created, nil
}

func (s *WorkspaceService) SendCampaign(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.api.SendCampaign(ctx, id); err != nil {
		return fmt.Errorf("send campaign %s: %w", id, err)
	}
	s.logger.Info(ctx, "campaign sent", "campaign_id", id)
	return nil
}

func (s *WorkspaceService) DeleteCampaign(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.api.DeleteCampaign(ctx, id); err != nil {
		return fmt.Errorf("delete campaign %s: %w", id, err)
	}
	return nil
}

// Analytics loads the report for a range label such as "30d" (see
// ParseRange).
func (s *WorkspaceService) Analytics(ctx context.Context, rangeLabel string) (*models.AnalyticsReport, error) {
	days, err := ParseRange(rangeLabel)
	if err != nil {
		return nil, err
	}

	out, err := s.api.Analytics(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("load analytics: %w", err)
	}
	return out, nil
}

// Ask sends a question to the AI assistant and returns its answer.
func (s *WorkspaceService) Ask(ctx context.Context, query string) (string, error) {
	req := models.ChatRequest{Query: strings.TrimSpace(query)}
	if err := validation.Validate(req); err != nil {
		return "", err
	}

	reply, err := s.api.Chat(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ai chat: %w", err)
	}
	return reply.Response, nil
}

func (s *WorkspaceService) Profile(ctx context.Context) (*models.Profile, error) {
	p, err := s.api.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func (s *WorkspaceService) UpdateProfile(ctx context.Context, p models.Profile) error {
	if err := validation.Validate(p); err != nil {
		return err
	}
	if err := s.api.UpdateProfile(ctx, p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &validation.Error{Fields: map[string]string{"id": "is required"}}
	}
	return nil
}
