package domain

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// ConciergeMessage is one entry of a guest's AI concierge conversation.
type ConciergeMessage struct {
	ID        string `json:"id"`
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type SynapseMessage struct {
	ID        string `json:"id"`
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type ChatConversation struct {
	ID          string `json:"id"`
	GuestName   string `json:"guestName"`
	LastMessage string `json:"lastMessage"`
	Source      string `json:"source"`
	Unread      bool   `json:"unread"`
	Timestamp   string `json:"timestamp"`
	Category    string `json:"category,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Intent      string `json:"intent,omitempty"`
	IsInternal  bool   `json:"isInternal,omitempty"`

	// Participants identifies an internal chat; "" stands for the reception.
	Participants []string `json:"participants,omitempty"`
}

func (c ChatConversation) Key() string { return c.ID }

type ChatMessage struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	SenderName     string `json:"senderName"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
	IsAutoReply    bool   `json:"isAutoReply,omitempty"`
}

func (m ChatMessage) Key() string { return m.ID }
