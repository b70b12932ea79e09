package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"hostel_pms/internal/domain"
)

// ServiceKind is what a guest can request from the portal. The values are
// the ones the guest UI sends.
type ServiceKind string

const (
	ServiceCleaning    ServiceKind = "Limpeza"
	ServiceMaintenance ServiceKind = "Manutenção"
)

// websiteVisitor is the sender id of messages typed into the public site
// chat widget.
const websiteVisitor = "website_visitor"

// RequestService turns a guest request into a to-do task for the booking's
// room.
func (s *BackOffice) RequestService(ctx context.Context, bookingID string, kind ServiceKind, details string) (domain.StaffTask, error) {
	if kind != ServiceCleaning && kind != ServiceMaintenance {
		return domain.StaffTask{}, invalidf("service type %q", kind)
	}
	b, err := s.store.Bookings().Get(ctx, bookingID)
	if err != nil {
		return domain.StaffTask{}, err
	}
	desc := fmt.Sprintf("%s requested for room %d", kind, b.RoomID)
	if details != "" {
		desc += ": " + details
	}
	room := b.RoomID
	return s.AddTask(ctx, domain.StaffTask{Description: desc, RoomID: &room, BookingID: b.ID})
}

// PlaceRoomServiceOrder sells products at catalog prices and charges the
// total to the booking's balance.
func (s *BackOffice) PlaceRoomServiceOrder(ctx context.Context, bookingID string, items []domain.SaleItem) (domain.Transaction, domain.Booking, error) {
	b, err := s.store.Bookings().Get(ctx, bookingID)
	if err != nil {
		return domain.Transaction{}, domain.Booking{}, err
	}
	switch b.Status {
	case domain.BookingCancelled, domain.BookingCheckedOut:
		return domain.Transaction{}, domain.Booking{}, invalidf("booking %s is %s", b.ID, b.Status)
	}
	items = slices.Clone(items)
	for i, it := range items {
		p, err := s.store.Products().Get(ctx, it.ProductID)
		if err != nil {
			return domain.Transaction{}, domain.Booking{}, invalidf("product %q does not exist", it.ProductID)
		}
		items[i].Name = p.Name
		items[i].UnitPrice = p.Price
	}
	guestName := ""
	if g, err := s.store.Guests().Get(ctx, b.GuestID); err == nil {
		guestName = g.FullName
	}

	tx, err := s.RecordTransaction(ctx, domain.Transaction{
		Items:         items,
		PaymentMethod: domain.PaymentRoomAccount,
		BookingID:     b.ID,
		GuestName:     guestName,
	})
	if err != nil {
		return domain.Transaction{}, domain.Booking{}, err
	}
	b, err = s.store.Bookings().Update(ctx, b.ID, func(b *domain.Booking) error {
		b.Balance += tx.Total
		b.PaymentStatus = domain.PaymentPending
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("tx", tx.ID).Str("booking", bookingID).Msg("room service not charged to booking")
		return tx, domain.Booking{}, err
	}
	return tx, b, nil
}

// StartWebsiteConversation opens a conversation from the public site chat
// widget with the visitor's first message.
func (s *BackOffice) StartWebsiteConversation(ctx context.Context, name, text string) (domain.ChatMessage, domain.ChatConversation, error) {
	if name == "" {
		return domain.ChatMessage{}, domain.ChatConversation{}, invalidf("visitor name is required")
	}
	return s.SendMessage(ctx, ChatSend{
		GuestName:  name,
		Source:     "Website",
		SenderID:   websiteVisitor,
		SenderName: name,
		Text:       text,
	})
}

// StartOrGetInternalChat returns the internal conversation between two
// staff members, creating it on first use. An empty peer means the
// reception desk.
func (s *BackOffice) StartOrGetInternalChat(ctx context.Context, staffID, peerID string) (domain.ChatConversation, error) {
	me, err := s.store.Staff().Get(ctx, staffID)
	if err != nil {
		return domain.ChatConversation{}, err
	}
	title := "Reception"
	if peerID != "" {
		if peerID == staffID {
			return domain.ChatConversation{}, invalidf("cannot open a chat with yourself")
		}
		peer, err := s.store.Staff().Get(ctx, peerID)
		if err != nil {
			return domain.ChatConversation{}, err
		}
		title = me.Name + " & " + peer.Name
	}
	who := []string{staffID, peerID}
	slices.Sort(who)

	s.chat.Lock()
	defer s.chat.Unlock()
	for _, c := range s.store.Conversations().List(ctx) {
		if c.IsInternal && slices.Equal(c.Participants, who) {
			return c, nil
		}
	}
	return s.store.Conversations().Insert(ctx, domain.ChatConversation{
		ID:           freshID("conv_", func(id string) bool { return s.store.Conversations().Has(ctx, id) }),
		GuestName:    title,
		Source:       "Internal",
		Timestamp:    s.stamp(),
		IsInternal:   true,
		Participants: who,
	})
}
