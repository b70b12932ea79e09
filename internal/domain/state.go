package domain

import "encoding/json"

// DBState is the aggregate for one property. The store keeps the mutable
// collections indexed; everything else travels through as raw JSON that only
// the UI interprets.
type DBState struct {
	Properties         []PropertyInfo     `json:"properties"`
	CurrentPropertyID  string             `json:"currentPropertyId"`
	SubscriptionPlans  []SubscriptionPlan `json:"subscriptionPlans"`
	Rooms              []Room             `json:"rooms"`
	Guests             []Guest            `json:"guests"`
	Bookings           []Booking          `json:"bookings"`
	Reviews            []Review           `json:"reviews"`
	Products           []Product          `json:"products"`
	Transactions       []Transaction      `json:"transactions"`
	Staff              []Staff            `json:"staff"`
	StaffTasks         []StaffTask        `json:"staffTasks"`
	ChatConversations  []ChatConversation `json:"chatConversations"`
	ChatMessages       []ChatMessage      `json:"chatMessages"`
	AdCampaigns        []AdCampaign       `json:"adCampaigns"`
	CustomAudiences    []CustomAudience   `json:"customAudiences"`
	Expenses           []Expense          `json:"expenses"`
	AddOns             []AddOn            `json:"addOns"`
	RatePlans          []RatePlan         `json:"ratePlans"`
	OTAConnections     []OTAConnection    `json:"otaConnections"`
	Projects           []Project          `json:"projects"`
	SynapseChatHistory []SynapseMessage   `json:"synapseChatHistory"`
	GuestJourneys      []GuestJourney     `json:"guestJourneys"`

	BookingRestrictions []BookingRestriction `json:"bookingRestrictions"`
	ShoppingLists       []ShoppingList       `json:"shoppingLists"`
	MediaLibrary        []MediaAsset         `json:"mediaLibrary"`
	ScheduledPosts      []ScheduledPost      `json:"scheduledPosts"`

	PlatformConnections     json.RawMessage `json:"platformConnections,omitempty"`
	SocialConnections       json.RawMessage `json:"socialConnections,omitempty"`
	PropertyEvents          json.RawMessage `json:"propertyEvents,omitempty"`
	LocalGuideTips          json.RawMessage `json:"localGuideTips,omitempty"`
	Blocks                  json.RawMessage `json:"blocks,omitempty"`
	SharedSpaces            json.RawMessage `json:"sharedSpaces,omitempty"`
	GuestActivities         json.RawMessage `json:"guestActivities,omitempty"`
	ActivityParticipants    json.RawMessage `json:"activityParticipants,omitempty"`
	ActivityComments        json.RawMessage `json:"activityComments,omitempty"`
	ActivityContributions   json.RawMessage `json:"activityContributions,omitempty"`
	SiteContent             json.RawMessage `json:"siteContent,omitempty"`
	ThemeSettings           json.RawMessage `json:"themeSettings,omitempty"`
	PublishedWorkSchedule   json.RawMessage `json:"publishedWorkSchedule,omitempty"`
	StaffPerformanceReviews json.RawMessage `json:"staffPerformanceReviews,omitempty"`
	OnboardingPlans         json.RawMessage `json:"onboardingPlans,omitempty"`
	AIEngagementAgent       json.RawMessage `json:"aiEngagementAgent,omitempty"`
	CampaignContext         json.RawMessage `json:"campaignContext,omitempty"`
	ManagementReport        json.RawMessage `json:"managementReport,omitempty"`
	Achievements            json.RawMessage `json:"achievements,omitempty"`
	Rewards                 json.RawMessage `json:"rewards,omitempty"`
	GuestPosts              json.RawMessage `json:"guestPosts,omitempty"`
	LoyaltyLevels           json.RawMessage `json:"loyaltyLevels,omitempty"`
	CheckIns                json.RawMessage `json:"checkIns,omitempty"`
}

// Setting names a document of the aggregate that the UI edits as one JSON
// value.
type Setting string

const (
	SettingSiteContent        Setting = "siteContent"
	SettingThemeSettings      Setting = "themeSettings"
	SettingPropertyEvents     Setting = "propertyEvents"
	SettingLocalGuideTips     Setting = "localGuideTips"
	SettingWorkSchedule       Setting = "publishedWorkSchedule"
	SettingPerformanceReviews Setting = "staffPerformanceReviews"
	SettingOnboardingPlans    Setting = "onboardingPlans"
)

// Field returns the aggregate field holding s, or nil for an unknown name.
func (d *DBState) Field(s Setting) *json.RawMessage {
	switch s {
	case SettingSiteContent:
		return &d.SiteContent
	case SettingThemeSettings:
		return &d.ThemeSettings
	case SettingPropertyEvents:
		return &d.PropertyEvents
	case SettingLocalGuideTips:
		return &d.LocalGuideTips
	case SettingWorkSchedule:
		return &d.PublishedWorkSchedule
	case SettingPerformanceReviews:
		return &d.StaffPerformanceReviews
	case SettingOnboardingPlans:
		return &d.OnboardingPlans
	}
	return nil
}
