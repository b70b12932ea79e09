package domain

// AdCampaign -> AdSet -> Ad. Campaigns are only ever produced by the AI
// generators; the API stores and returns them.
type AdCampaign struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Platform        string         `json:"platform"`
	Status          string         `json:"status"`
	IsGeneratedByAI bool           `json:"isGeneratedByAI,omitempty"`
	AdSets          []AdSet        `json:"adSets"`
	Rules           []CampaignRule `json:"rules"`
}

func (c AdCampaign) Key() string { return c.ID }

type CampaignRule struct {
	ID        string `json:"id"`
	Condition string `json:"condition"`
	Action    string `json:"action"`
}

type AdSet struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Audience Audience `json:"audience"`
	KPIs     AdKPIs   `json:"kpis"`
	Ads      []Ad     `json:"ads"`
}

type Audience struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AdKPIs struct {
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Cost        float64 `json:"cost"`
	Conversions int     `json:"conversions"`
}

type Ad struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	Copy           AdCopy `json:"copy"`
	CreativePrompt string `json:"creativePrompt,omitempty"`
	MediaAssetID   string `json:"mediaAssetId,omitempty"`
	CreativeURL    string `json:"creativeUrl,omitempty"`
}

type AdCopy struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
}

type CustomAudience struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (a CustomAudience) Key() string { return a.ID }

type PostLogEntry struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

type ScheduledPost struct {
	ID          string         `json:"id"`
	Platform    string         `json:"platform"`
	Content     string         `json:"content"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	VideoURL    string         `json:"videoUrl,omitempty"`
	Status      string         `json:"status"`
	ScheduledAt string         `json:"scheduledAt"`
	CampaignID  string         `json:"campaignId,omitempty"`
	Log         []PostLogEntry `json:"log"`
}

func (p ScheduledPost) Key() string { return p.ID }

const (
	PostScheduled = "Scheduled"
	PostDraft     = "Draft"
)

type MediaAsset struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	Prompt    string `json:"prompt,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func (m MediaAsset) Key() string { return m.ID }
