package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"hostel_pms/internal/domain"
)

// Store holds the whole aggregate for one property. It lives for the
// lifetime of the process and is never persisted.
type Store struct {
	mu sync.RWMutex

	rooms         *Table[int, domain.Room]
	guests        *Table[string, domain.Guest]
	bookings      *Table[string, domain.Booking]
	reviews       *Table[string, domain.Review]
	staff         *Table[string, domain.Staff]
	tasks         *Table[string, domain.StaffTask]
	products      *Table[string, domain.Product]
	transactions  *Table[string, domain.Transaction]
	expenses      *Table[string, domain.Expense]
	projects      *Table[string, domain.Project]
	conversations *Table[string, domain.ChatConversation]
	messages      *Table[string, domain.ChatMessage]
	campaigns     *Table[string, domain.AdCampaign]
	audiences     *Table[string, domain.CustomAudience]
	properties    *Table[string, domain.PropertyInfo]
	ratePlans     *Table[string, domain.RatePlan]
	addOns        *Table[string, domain.AddOn]
	restrictions  *Table[string, domain.BookingRestriction]
	otas          *Table[string, domain.OTAConnection]
	shopping      *Table[string, domain.ShoppingList]
	media         *Table[string, domain.MediaAsset]
	posts         *Table[string, domain.ScheduledPost]

	synapse []domain.SynapseMessage
	rest    domain.DBState
}

func New(seed domain.DBState) *Store {
	s := &Store{}
	s.rooms = newTable("room", &s.mu, seed.Rooms)
	s.guests = newTable("guest", &s.mu, seed.Guests)
	s.bookings = newTable("booking", &s.mu, seed.Bookings)
	s.reviews = newTable("review", &s.mu, seed.Reviews)
	s.staff = newTable("staff", &s.mu, seed.Staff)
	s.tasks = newTable("task", &s.mu, seed.StaffTasks)
	s.products = newTable("product", &s.mu, seed.Products)
	s.transactions = newTable("transaction", &s.mu, seed.Transactions)
	s.expenses = newTable("expense", &s.mu, seed.Expenses)
	s.projects = newTable("project", &s.mu, seed.Projects)
	s.conversations = newTable("conversation", &s.mu, seed.ChatConversations)
	s.messages = newTable("message", &s.mu, seed.ChatMessages)
	s.campaigns = newTable("campaign", &s.mu, seed.AdCampaigns)
	s.audiences = newTable("audience", &s.mu, seed.CustomAudiences)
	s.properties = newTable("property", &s.mu, seed.Properties)
	s.ratePlans = newTable("rate plan", &s.mu, seed.RatePlans)
	s.addOns = newTable("add-on", &s.mu, seed.AddOns)
	s.restrictions = newTable("booking restriction", &s.mu, seed.BookingRestrictions)
	s.otas = newTable("ota connection", &s.mu, seed.OTAConnections)
	s.shopping = newTable("shopping list", &s.mu, seed.ShoppingLists)
	s.media = newTable("media asset", &s.mu, seed.MediaLibrary)
	s.posts = newTable("scheduled post", &s.mu, seed.ScheduledPosts)
	s.synapse = append([]domain.SynapseMessage(nil), seed.SynapseChatHistory...)

	rest := seed
	rest.Rooms, rest.Guests, rest.Bookings, rest.Reviews = nil, nil, nil, nil
	rest.Staff, rest.StaffTasks, rest.Products, rest.Transactions = nil, nil, nil, nil
	rest.Expenses, rest.Projects, rest.ChatConversations, rest.ChatMessages = nil, nil, nil, nil
	rest.AdCampaigns, rest.CustomAudiences, rest.SynapseChatHistory = nil, nil, nil
	rest.Properties, rest.RatePlans, rest.AddOns, rest.OTAConnections = nil, nil, nil, nil
	rest.BookingRestrictions, rest.ShoppingLists, rest.MediaLibrary, rest.ScheduledPosts = nil, nil, nil, nil
	s.rest = rest
	return s
}

func (s *Store) Rooms() domain.Collection[int, domain.Room] { return s.rooms }
func (s *Store) Guests() domain.Collection[string, domain.Guest] { return s.guests }
func (s *Store) Bookings() domain.Collection[string, domain.Booking] { return s.bookings }
func (s *Store) Reviews() domain.Collection[string, domain.Review] { return s.reviews }
func (s *Store) Staff() domain.Collection[string, domain.Staff] { return s.staff }
func (s *Store) Tasks() domain.Collection[string, domain.StaffTask] { return s.tasks }
func (s *Store) Products() domain.Collection[string, domain.Product] { return s.products }
func (s *Store) Expenses() domain.Collection[string, domain.Expense] { return s.expenses }
func (s *Store) Projects() domain.Collection[string, domain.Project] { return s.projects }
func (s *Store) Messages() domain.Collection[string, domain.ChatMessage] { return s.messages }
func (s *Store) Campaigns() domain.Collection[string, domain.AdCampaign] { return s.campaigns }

func (s *Store) Transactions() domain.Collection[string, domain.Transaction] {
	return s.transactions
}

func (s *Store) Conversations() domain.Collection[string, domain.ChatConversation] {
	return s.conversations
}

func (s *Store) Audiences() domain.Collection[string, domain.CustomAudience] {
	return s.audiences
}

func (s *Store) Properties() domain.Collection[string, domain.PropertyInfo] {
	return s.properties
}

func (s *Store) RatePlans() domain.Collection[string, domain.RatePlan] { return s.ratePlans }
func (s *Store) AddOns() domain.Collection[string, domain.AddOn] { return s.addOns }
func (s *Store) Media() domain.Collection[string, domain.MediaAsset] { return s.media }

func (s *Store) Restrictions() domain.Collection[string, domain.BookingRestriction] {
	return s.restrictions
}

func (s *Store) OTAConnections() domain.Collection[string, domain.OTAConnection] {
	return s.otas
}

func (s *Store) ShoppingLists() domain.Collection[string, domain.ShoppingList] {
	return s.shopping
}

func (s *Store) ScheduledPosts() domain.Collection[string, domain.ScheduledPost] {
	return s.posts
}

// AddRoom assigns the next numeric id (max+1) and inserts the room in one
// critical section.
func (s *Store) AddRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 1
	for id := range s.rooms.rows {
		if id >= next {
			next = id + 1
		}
	}
	r.ID = next
	s.rooms.insertLocked(r)
	return r, nil
}

func (s *Store) AppendSynapse(ctx context.Context, m domain.SynapseMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synapse = append(s.synapse, m)
}

// MoveStock checks every move before touching any product, so a failed
// sale or receipt leaves stock and transactions unchanged.
func (s *Store) MoveStock(ctx context.Context, moves []domain.StockMove, tx *domain.Transaction) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]int, len(moves))
	for _, m := range moves {
		row, ok := s.products.rows[m.ProductID]
		if !ok {
			return nil, s.products.notFound(m.ProductID)
		}
		stock, seen := next[m.ProductID]
		if !seen {
			stock = row.Stock
		}
		stock += m.Delta
		if stock < 0 {
			return nil, fmt.Errorf("%w: %s has %d in stock, short by %d", domain.ErrValidation, m.ProductID, row.Stock, -stock)
		}
		next[m.ProductID] = stock
	}
	if tx != nil {
		if _, dup := s.transactions.rows[tx.ID]; dup {
			return nil, fmt.Errorf("%w: transaction %s already exists", domain.ErrValidation, tx.ID)
		}
	}

	out := make([]domain.Product, 0, len(next))
	for _, m := range moves {
		row := s.products.rows[m.ProductID]
		stock, pending := next[m.ProductID]
		if !pending {
			continue
		}
		row.Stock = stock
		delete(next, m.ProductID)
		out = append(out, *row)
	}
	if tx != nil {
		s.transactions.insertLocked(*tx)
	}
	return out, nil
}

func (s *Store) UpdateSetting(ctx context.Context, key domain.Setting, mutate func(json.RawMessage) (json.RawMessage, error)) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	field := s.rest.Field(key)
	if field == nil {
		return nil, fmt.Errorf("setting %q: %w", key, domain.ErrNotFound)
	}
	v, err := mutate(*field)
	if err != nil {
		return nil, err
	}
	if !json.Valid(v) {
		return nil, fmt.Errorf("%w: setting %q is not valid JSON", domain.ErrValidation, key)
	}
	*field = v
	return v, nil
}

// Snapshot returns the full aggregate with credentials stripped.
func (s *Store) Snapshot() domain.DBState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.rest
	out.Rooms = s.rooms.valuesLocked()
	out.Guests = s.guests.valuesLocked()
	for i := range out.Guests {
		out.Guests[i] = out.Guests[i].Public()
	}
	out.Bookings = s.bookings.valuesLocked()
	out.Reviews = s.reviews.valuesLocked()
	out.Staff = s.staff.valuesLocked()
	for i := range out.Staff {
		out.Staff[i] = out.Staff[i].Public()
	}
	out.StaffTasks = s.tasks.valuesLocked()
	out.Products = s.products.valuesLocked()
	out.Transactions = s.transactions.valuesLocked()
	out.Expenses = s.expenses.valuesLocked()
	out.Projects = s.projects.valuesLocked()
	out.ChatConversations = s.conversations.valuesLocked()
	out.ChatMessages = s.messages.valuesLocked()
	out.AdCampaigns = s.campaigns.valuesLocked()
	out.CustomAudiences = s.audiences.valuesLocked()
	out.Properties = s.properties.valuesLocked()
	out.RatePlans = s.ratePlans.valuesLocked()
	out.AddOns = s.addOns.valuesLocked()
	out.BookingRestrictions = s.restrictions.valuesLocked()
	out.OTAConnections = s.otas.valuesLocked()
	out.ShoppingLists = s.shopping.valuesLocked()
	out.MediaLibrary = s.media.valuesLocked()
	out.ScheduledPosts = s.posts.valuesLocked()
	out.SynapseChatHistory = append([]domain.SynapseMessage{}, s.synapse...)
	return out
}

var _ domain.StateStore = (*Store)(nil)
