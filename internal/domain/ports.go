package domain

import (
	"context"
	"encoding/json"
	"time"
)

type Keyed[K comparable] interface {
	Key() K
}

// Collection is the repository for one entity collection of the aggregate.
// Every call is atomic with respect to the other collections of the store.
type Collection[K comparable, V Keyed[K]] interface {
	List(ctx context.Context) []V
	Get(ctx context.Context, id K) (V, error)
	Has(ctx context.Context, id K) bool
	Insert(ctx context.Context, v V) (V, error)
	Update(ctx context.Context, id K, mutate func(*V) error) (V, error)
	Delete(ctx context.Context, id K) error
}

// StateStore exposes the aggregate of one property as per-collection
// repositories plus whole-state reads.
type StateStore interface {
	Rooms() Collection[int, Room]
	Guests() Collection[string, Guest]
	Bookings() Collection[string, Booking]
	Reviews() Collection[string, Review]
	Staff() Collection[string, Staff]
	Tasks() Collection[string, StaffTask]
	Products() Collection[string, Product]
	Transactions() Collection[string, Transaction]
	Expenses() Collection[string, Expense]
	Projects() Collection[string, Project]
	Conversations() Collection[string, ChatConversation]
	Messages() Collection[string, ChatMessage]
	Campaigns() Collection[string, AdCampaign]
	Audiences() Collection[string, CustomAudience]
	Properties() Collection[string, PropertyInfo]
	RatePlans() Collection[string, RatePlan]
	AddOns() Collection[string, AddOn]
	Restrictions() Collection[string, BookingRestriction]
	OTAConnections() Collection[string, OTAConnection]
	ShoppingLists() Collection[string, ShoppingList]
	Media() Collection[string, MediaAsset]
	ScheduledPosts() Collection[string, ScheduledPost]

	AddRoom(ctx context.Context, r Room) (Room, error)
	AppendSynapse(ctx context.Context, m SynapseMessage)

	// MoveStock applies every move or none. Unknown products are
	// ErrNotFound; a move that would leave a stock below zero is
	// ErrValidation. A non-nil tx is inserted in the same critical section.
	MoveStock(ctx context.Context, moves []StockMove, tx *Transaction) ([]Product, error)

	// UpdateSetting replaces the document key with mutate's result.
	UpdateSetting(ctx context.Context, key Setting, mutate func(json.RawMessage) (json.RawMessage, error)) (json.RawMessage, error)

	Snapshot() DBState
}

// Gateway is the boundary to the generative-AI provider. The mock strategy
// answers every call with the fallback carried by the prompt.
type Gateway interface {
	Mode() string
	GenerateJSON(ctx context.Context, p Prompt) (json.RawMessage, error)
	GenerateText(ctx context.Context, p Prompt) (string, error)
	GenerateImage(ctx context.Context, p Prompt, aspectRatio string) (*GeneratedImage, error)
}

// Prompt is one gateway request. Mock is the fixed answer used in offline
// mode; Image optionally attaches a picture for the model to inspect.
type Prompt struct {
	Operation string
	Text      string
	Image     *InlineImage
	Mock      any
}

type InlineImage struct {
	MIMEType string
	Base64   string
}

type GeneratedImage struct {
	Base64Image string `json:"base64Image"`
}

type PrincipalKind string

const (
	PrincipalStaff PrincipalKind = "staff"
	PrincipalGuest PrincipalKind = "guest"
)

type Session struct {
	ID       string        `json:"id"`
	Kind     PrincipalKind `json:"kind"`
	UserID   string        `json:"userId"`
	IssuedAt time.Time     `json:"issuedAt"`
}

type SessionStore interface {
	Put(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (Session, bool, error)
	Del(ctx context.Context, id string) error
}

// Invocation is one audited call through the Gateway.
type Invocation struct {
	Operation  string    `json:"operation"`
	Mode       string    `json:"mode"`
	OK         bool      `json:"ok"`
	DurationMS int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// InvocationLog is the audit trail of gateway calls, newest first on read.
type InvocationLog interface {
	Record(ctx context.Context, inv Invocation) error
	Recent(ctx context.Context, limit int) ([]Invocation, error)
}
