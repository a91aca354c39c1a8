package models

import "time"

type Customer struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Location      string    `json:"location,omitempty"`
	TotalSpent    float64   `json:"totalSpent"`
	OrderCount    int       `json:"orderCount"`
	LastOrderDate time.Time `json:"lastOrderDate,omitempty"`
}

// SegmentRule is one predicate of a segment, e.g. totalSpent gte 1000.
type SegmentRule struct {
	Field    string `json:"field" validate:"required,oneof=totalSpent total_spend orderCount visits lastOrderDate last_active_date location email phone createdAt"`
	Operator string `json:"operator" validate:"required,oneof=eq ne gt gte lt lte contains startsWith"`
	Value    string `json:"value" validate:"required"`
}

type SegmentCriteria struct {
	Rules []SegmentRule `json:"rules" validate:"required,min=1,dive"`
	Logic string        `json:"logic" validate:"required,oneof=AND OR"`
}

type Segment struct {
	ID            string          `json:"_id,omitempty"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Criteria      SegmentCriteria `json:"criteria"`
	CustomerCount int             `json:"customerCount,omitempty"`
	CreatedAt     time.Time       `json:"createdAt,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt,omitempty"`
}

type SegmentPreview struct {
	Count     int        `json:"count"`
	Customers []Customer `json:"customers,omitempty"`
}

type CampaignMessage struct {
	Subject  string `json:"subject,omitempty"`
	Content  string `json:"content" validate:"required"`
	Template string `json:"template,omitempty"`
}

type CampaignStats struct {
	Sent      int `json:"sent"`
	Delivered int `json:"delivered"`
	Opened    int `json:"opened"`
	Clicked   int `json:"clicked"`
	Bounced   int `json:"bounced"`
}

type CampaignSegment struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	EstimatedCount int    `json:"estimatedCount"`
}

type Campaign struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Segment       CampaignSegment `json:"segment"`
	Message       CampaignMessage `json:"message"`
	ScheduledDate string          `json:"scheduledDate,omitempty"`
	SentDate      string          `json:"sentDate,omitempty"`
	Stats         CampaignStats   `json:"stats"`
	CreatedAt     time.Time       `json:"createdAt,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt,omitempty"`
}

// CampaignDraft is the body of POST /campaigns.
type CampaignDraft struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Type          string          `json:"type" validate:"required,oneof=email sms push"`
	SegmentID     string          `json:"segmentId" validate:"required"`
	Message       CampaignMessage `json:"message"`
	ScheduledDate string          `json:"scheduledDate,omitempty"`
	Status        string          `json:"status" validate:"required,oneof=draft scheduled"`
}

type GrowthPoint struct {
	Month     string  `json:"month"`
	Customers int     `json:"customers"`
	Campaigns int     `json:"campaigns,omitempty"`
	Revenue   float64 `json:"revenue,omitempty"`
}

type ChannelPerformance struct {
	Name      string `json:"name"`
	Sent      int    `json:"sent"`
	Delivered int    `json:"delivered,omitempty"`
	Opened    int    `json:"opened"`
	Clicked   int    `json:"clicked"`
}

type Activity struct {
	ID     any    `json:"id"`
	Action string `json:"action"`
	Time   string `json:"time"`
	Type   string `json:"type"`
}

type DashboardStats struct {
	TotalCustomers      int                  `json:"totalCustomers"`
	ActiveCampaigns     int                  `json:"activeCampaigns"`
	CustomerSegments    int                  `json:"customerSegments"`
	AvgEngagement       float64              `json:"avgEngagement"`
	CustomerGrowth      []GrowthPoint        `json:"customerGrowth"`
	CampaignPerformance []ChannelPerformance `json:"campaignPerformance"`
	RecentActivities    []Activity           `json:"recentActivities"`
}

type SegmentShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type AnalyticsReport struct {
	TotalCustomers      int                  `json:"totalCustomers"`
	TotalSegments       int                  `json:"totalSegments"`
	TotalCampaigns      int                  `json:"totalCampaigns"`
	TotalRevenue        float64              `json:"totalRevenue"`
	CampaignPerformance []ChannelPerformance `json:"campaignPerformance"`
	CustomerGrowth      []GrowthPoint        `json:"customerGrowth"`
	SegmentDistribution []SegmentShare       `json:"segmentDistribution"`
}

type ChatRequest struct {
	Query string `json:"query" validate:"required"`
}

type ChatReply struct {
	Response string `json:"response"`
}

type Profile struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Location   string `json:"location,omitempty"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
	JoinDate   string `json:"joinDate,omitempty"`
}
