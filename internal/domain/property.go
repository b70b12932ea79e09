package domain

import "encoding/json"

type PropertyInfo struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Address            string          `json:"address"`
	CNPJ               string          `json:"cnpj"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	CheckInTime        string          `json:"checkInTime"`
	CheckOutTime       string          `json:"checkOutTime"`
	WifiNetwork        string          `json:"wifiNetwork"`
	WifiPass           string          `json:"wifiPass"`
	Rules              []string        `json:"rules"`
	PlanID             string          `json:"planId"`
	SubscriptionStatus string          `json:"subscriptionStatus"`
	PaymentGateways    json.RawMessage `json:"paymentGatewaySettings,omitempty"`
}

func (p PropertyInfo) Key() string { return p.ID }

type SubscriptionPlan struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Description string         `json:"description"`
	Features    []AdminSection `json:"features"`
}

type RatePlan struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PriceModifier float64 `json:"priceModifier"`
	ModifierType  string  `json:"modifierType"`
	IsDefault     bool    `json:"isDefault"`
}

func (r RatePlan) Key() string { return r.ID }

func ValidModifierType(t string) bool { return t == "fixed" || t == "percentage" }

type AddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (a AddOn) Key() string { return a.ID }

type RestrictionType string

const (
	RestrictionMinStay    RestrictionType = "minStay"
	RestrictionMinAdvance RestrictionType = "minAdvance"
)

// BookingRestriction limits bookings whose dates fall in [StartDate, EndDate].
type BookingRestriction struct {
	ID        string          `json:"id"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Type      RestrictionType `json:"type"`
	Value     int             `json:"value"`
	Name      string          `json:"name"`
}

func (b BookingRestriction) Key() string { return b.ID }

type OTAConnection struct {
	Platform   string  `json:"platform"`
	Connected  bool    `json:"connected"`
	PropertyID *string `json:"propertyId"`
	LastSync   *string `json:"lastSync"`
}

// Key is the channel name; there is one connection per platform.
func (o OTAConnection) Key() string { return o.Platform }

type GuestJourney struct {
	ID                string     `json:"id"`
	BookingID         string     `json:"bookingId"`
	GuestID           string     `json:"guestId"`
	Status            string     `json:"status"`
	SatisfactionScore int        `json:"satisfactionScore"`
	EngagementLevel   string     `json:"engagementLevel"`
	ActionLog         []AIAction `json:"actionLog"`
}

type AIAction struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Timestamp     string         `json:"timestamp"`
	Details       map[string]any `json:"details"`
	Justification string         `json:"justification"`
}
