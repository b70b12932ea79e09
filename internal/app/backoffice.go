package app

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hostel_pms/internal/domain"
)

// BackOffice covers staff, tasks, projects, the point of sale, expenses,
// the team inbox, the rate manager and the guest portal requests.
type BackOffice struct {
	store domain.StateStore
	now   func() time.Time

	// chat serializes find-or-create of internal conversations.
	chat sync.Mutex
}

func NewBackOffice(st domain.StateStore) *BackOffice {
	return &BackOffice{store: st, now: time.Now}
}

func (s *BackOffice) stamp() string { return s.now().UTC().Format(isoMillis) }

// ---- staff ----

func (s *BackOffice) AddStaff(ctx context.Context, st domain.Staff) (domain.Staff, error) {
	if !st.Role.Valid() {
		return domain.Staff{}, invalidf("staff role %q", st.Role)
	}
	if st.Name == "" || st.Email == "" {
		return domain.Staff{}, invalidf("staff name and email are required")
	}
	if st.Permissions == nil {
		st.Permissions = []domain.AdminSection{}
	}
	st.ID = freshID("S", func(id string) bool { return s.store.Staff().Has(ctx, id) })
	out, err := s.store.Staff().Insert(ctx, st)
	return out.Public(), err
}

// UpdateStaff replaces the member's record; an empty password keeps the
// stored one.
func (s *BackOffice) UpdateStaff(ctx context.Context, id string, in domain.Staff) (domain.Staff, error) {
	if in.Role != "" && !in.Role.Valid() {
		return domain.Staff{}, invalidf("staff role %q", in.Role)
	}
	out, err := s.store.Staff().Update(ctx, id, func(st *domain.Staff) error {
		in.ID = st.ID
		if in.Password == "" {
			in.Password = st.Password
		}
		if in.Role == "" {
			in.Role = st.Role
		}
		if in.Permissions == nil {
			in.Permissions = st.Permissions
		}
		*st = in
		return nil
	})
	return out.Public(), err
}

func (s *BackOffice) DeleteStaff(ctx context.Context, id string) error {
	return s.store.Staff().Delete(ctx, id)
}

func (s *BackOffice) CompleteOnboarding(ctx context.Context, id string) (domain.Staff, error) {
	out, err := s.store.Staff().Update(ctx, id, func(st *domain.Staff) error {
		st.OnboardingCompleted = true
		return nil
	})
	return out.Public(), err
}

// ---- tasks ----

// AddTask creates a task in Todo unless a status is given, and links it to
// its project when one is named.
func (s *BackOffice) AddTask(ctx context.Context, t domain.StaffTask) (domain.StaffTask, error) {
	if t.Description == "" {
		return domain.StaffTask{}, invalidf("task description is required")
	}
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if !t.Status.Valid() {
		return domain.StaffTask{}, invalidf("task status %q", t.Status)
	}
	if t.ProjectID != "" && !s.store.Projects().Has(ctx, t.ProjectID) {
		return domain.StaffTask{}, invalidf("project %q does not exist", t.ProjectID)
	}
	t.ID = freshID("T", func(id string) bool { return s.store.Tasks().Has(ctx, id) })
	out, err := s.store.Tasks().Insert(ctx, t)
	if err != nil {
		return domain.StaffTask{}, err
	}
	if t.ProjectID != "" {
		if _, err := s.store.Projects().Update(ctx, t.ProjectID, func(p *domain.Project) error {
			p.TaskIDs = append(slices.Clone(p.TaskIDs), out.ID)
			return nil
		}); err != nil {
			log.Warn().Err(err).Str("task", out.ID).Msg("task not linked to project")
		}
	}
	return out, nil
}

func (s *BackOffice) UpdateTask(ctx context.Context, id string, in domain.StaffTask) (domain.StaffTask, error) {
	if in.Status != "" && !in.Status.Valid() {
		return domain.StaffTask{}, invalidf("task status %q", in.Status)
	}
	return s.store.Tasks().Update(ctx, id, func(t *domain.StaffTask) error {
		in.ID = t.ID
		if in.Status == "" {
			in.Status = t.Status
		}
		*t = in
		return nil
	})
}

func (s *BackOffice) SetTaskStatus(ctx context.Context, id string, st domain.TaskStatus) (domain.StaffTask, error) {
	if !st.Valid() {
		return domain.StaffTask{}, invalidf("task status %q", st)
	}
	return s.store.Tasks().Update(ctx, id, func(t *domain.StaffTask) error {
		t.Status = st
		return nil
	})
}

// ApproveTask closes a task a supervisor has checked.
func (s *BackOffice) ApproveTask(ctx context.Context, id string) (domain.StaffTask, error) {
	return s.store.Tasks().Update(ctx, id, func(t *domain.StaffTask) error {
		t.Status = domain.TaskDone
		t.SupervisorComment = ""
		return nil
	})
}

// RejectTask sends a task back to Todo with the supervisor's comment.
func (s *BackOffice) RejectTask(ctx context.Context, id, comment string) (domain.StaffTask, error) {
	return s.store.Tasks().Update(ctx, id, func(t *domain.StaffTask) error {
		t.Status = domain.TaskTodo
		t.SupervisorComment = comment
		return nil
	})
}

// ---- projects ----

func (s *BackOffice) AddProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	if p.Name == "" {
		return domain.Project{}, invalidf("project name is required")
	}
	p.ID = freshID("PRJ", func(id string) bool { return s.store.Projects().Has(ctx, id) })
	p.CreatedAt = s.stamp()
	if p.TaskIDs == nil {
		p.TaskIDs = []string{}
	}
	return s.store.Projects().Insert(ctx, p)
}

func (s *BackOffice) UpdateProject(ctx context.Context, id string, in domain.Project) (domain.Project, error) {
	return s.store.Projects().Update(ctx, id, func(p *domain.Project) error {
		in.ID, in.CreatedAt = p.ID, p.CreatedAt
		if in.TaskIDs == nil {
			in.TaskIDs = p.TaskIDs
		}
		*p = in
		return nil
	})
}

func (s *BackOffice) DeleteProject(ctx context.Context, id string) error {
	return s.store.Projects().Delete(ctx, id)
}

// ---- point of sale ----

func (s *BackOffice) AddProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.Name == "" || p.Price < 0 || p.Stock < 0 {
		return domain.Product{}, invalidf("product needs a name and non-negative price and stock")
	}
	p.ID = freshID("P", func(id string) bool { return s.store.Products().Has(ctx, id) })
	return s.store.Products().Insert(ctx, p)
}

func (s *BackOffice) UpdateProduct(ctx context.Context, id string, in domain.Product) (domain.Product, error) {
	if in.Price < 0 || in.Stock < 0 {
		return domain.Product{}, invalidf("price and stock must be non-negative")
	}
	return s.store.Products().Update(ctx, id, func(p *domain.Product) error {
		in.ID = p.ID
		*p = in
		return nil
	})
}

func (s *BackOffice) DeleteProduct(ctx context.Context, id string) error {
	return s.store.Products().Delete(ctx, id)
}

// AdjustStock adds delta (possibly negative) to the product's stock. The
// result may not drop below zero.
func (s *BackOffice) AdjustStock(ctx context.Context, id string, delta int) (domain.Product, error) {
	p, err := s.store.Products().Update(ctx, id, func(p *domain.Product) error {
		if p.Stock+delta < 0 {
			return invalidf("stock of %s would become %d", p.ID, p.Stock+delta)
		}
		p.Stock += delta
		return nil
	})
	if err == nil && p.LowStock() {
		log.Warn().Str("product", p.ID).Int("stock", p.Stock).Msg("product below low-stock threshold")
	}
	return p, err
}

// RecordTransaction stores a sale and takes the sold quantities out of
// stock in one step. A sale that names an unknown product or asks for more
// than is on the shelf is rejected before anything changes.
func (s *BackOffice) RecordTransaction(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	if len(tx.Items) == 0 {
		return domain.Transaction{}, invalidf("transaction has no items")
	}
	total := 0.0
	moves := make([]domain.StockMove, 0, len(tx.Items))
	for _, it := range tx.Items {
		if it.Quantity <= 0 {
			return domain.Transaction{}, invalidf("quantity of %s must be positive", it.ProductID)
		}
		if !s.store.Products().Has(ctx, it.ProductID) {
			return domain.Transaction{}, invalidf("product %q does not exist", it.ProductID)
		}
		total += float64(it.Quantity) * it.UnitPrice
		moves = append(moves, domain.StockMove{ProductID: it.ProductID, Delta: -it.Quantity})
	}
	if tx.Total == 0 {
		tx.Total = total
	}
	tx.Items = slices.Clone(tx.Items)
	tx.ID = freshID("TX", func(id string) bool { return s.store.Transactions().Has(ctx, id) })
	if tx.Timestamp == "" {
		tx.Timestamp = s.stamp()
	}
	products, err := s.store.MoveStock(ctx, moves, &tx)
	if err != nil {
		return domain.Transaction{}, err
	}
	warnLowStock(products)
	return tx, nil
}

func warnLowStock(products []domain.Product) {
	for _, p := range products {
		if p.LowStock() {
			log.Warn().Str("product", p.ID).Int("stock", p.Stock).Msg("product below low-stock threshold")
		}
	}
}

func (s *BackOffice) AddExpense(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	if e.Description == "" || e.Amount <= 0 {
		return domain.Expense{}, invalidf("expense needs a description and a positive amount")
	}
	e.ID = freshID("E", func(id string) bool { return s.store.Expenses().Has(ctx, id) })
	if e.Date == "" {
		e.Date = s.now().UTC().Format(time.DateOnly)
	}
	return s.store.Expenses().Insert(ctx, e)
}

func (s *BackOffice) DeleteExpense(ctx context.Context, id string) error {
	return s.store.Expenses().Delete(ctx, id)
}

// ---- inbox ----

// ChatSend is one outgoing inbox message. An empty or unknown
// ConversationID opens a new conversation.
type ChatSend struct {
	ConversationID string `json:"conversationId"`
	GuestName      string `json:"guestName"`
	Source         string `json:"source"`
	SenderID       string `json:"senderId"`
	SenderName     string `json:"senderName"`
	Text           string `json:"text"`
	IsInternal     bool   `json:"isInternal"`
}

// SendMessage appends the message and bumps its conversation. Messages from
// anyone but staff mark the conversation unread.
func (s *BackOffice) SendMessage(ctx context.Context, in ChatSend) (domain.ChatMessage, domain.ChatConversation, error) {
	if in.Text == "" || in.SenderID == "" {
		return domain.ChatMessage{}, domain.ChatConversation{}, invalidf("senderId and text are required")
	}
	ts := s.stamp()
	fromStaff := s.store.Staff().Has(ctx, in.SenderID)

	convID := in.ConversationID
	if convID == "" || !s.store.Conversations().Has(ctx, convID) {
		source := in.Source
		if source == "" {
			source = "Internal"
		}
		conv := domain.ChatConversation{
			ID:         freshID("conv_", func(id string) bool { return s.store.Conversations().Has(ctx, id) }),
			GuestName:  in.GuestName,
			Source:     source,
			Timestamp:  ts,
			IsInternal: in.IsInternal,
		}
		if conv.GuestName == "" {
			conv.GuestName = in.SenderName
		}
		if _, err := s.store.Conversations().Insert(ctx, conv); err != nil {
			return domain.ChatMessage{}, domain.ChatConversation{}, err
		}
		convID = conv.ID
	}

	msg := domain.ChatMessage{
		ID:             freshID("msg_", func(id string) bool { return s.store.Messages().Has(ctx, id) }),
		ConversationID: convID,
		SenderID:       in.SenderID,
		SenderName:     in.SenderName,
		Text:           in.Text,
		Timestamp:      ts,
	}
	msg, err := s.store.Messages().Insert(ctx, msg)
	if err != nil {
		return domain.ChatMessage{}, domain.ChatConversation{}, err
	}
	conv, err := s.store.Conversations().Update(ctx, convID, func(c *domain.ChatConversation) error {
		c.LastMessage = in.Text
		c.Timestamp = ts
		c.Unread = !fromStaff
		return nil
	})
	return msg, conv, err
}

func (s *BackOffice) MarkConversationRead(ctx context.Context, id string) (domain.ChatConversation, error) {
	return s.store.Conversations().Update(ctx, id, func(c *domain.ChatConversation) error {
		c.Unread = false
		return nil
	})
}
