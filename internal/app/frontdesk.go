package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"hostel_pms/internal/domain"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Booking defaults applied by CreateBookingWithNewGuest. Pricing is not
// derived from the room, the rate plan or the stay length.
const (
	newGuestBookingTotal   = 200
	newGuestBookingBalance = 0
)

// FrontDesk covers rooms, guests, bookings and reviews.
type FrontDesk struct {
	store domain.StateStore
	now   func() time.Time
}

func NewFrontDesk(st domain.StateStore) *FrontDesk {
	return &FrontDesk{store: st, now: time.Now}
}

func (s *FrontDesk) stamp() string { return s.now().UTC().Format(isoMillis) }

func (s *FrontDesk) today() string { return s.now().UTC().Format(time.DateOnly) }

// ---- rooms ----

func (s *FrontDesk) AddRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	if r.Status == "" {
		r.Status = domain.RoomAvailable
	}
	if !r.Status.Valid() {
		return domain.Room{}, invalidf("room status %q", r.Status)
	}
	if r.Name == "" {
		return domain.Room{}, invalidf("room name is required")
	}
	return s.store.AddRoom(ctx, r)
}

func (s *FrontDesk) UpdateRoom(ctx context.Context, id int, in domain.Room) (domain.Room, error) {
	if in.Status != "" && !in.Status.Valid() {
		return domain.Room{}, invalidf("room status %q", in.Status)
	}
	return s.store.Rooms().Update(ctx, id, func(r *domain.Room) error {
		in.ID = r.ID
		if in.Status == "" {
			in.Status = r.Status
		}
		*r = in
		return nil
	})
}

// SetRoomStatus overwrites the status of room id. Any status may follow any
// other; occupancy is not consulted.
func (s *FrontDesk) SetRoomStatus(ctx context.Context, id int, status domain.RoomStatus) (domain.Room, error) {
	if !status.Valid() {
		return domain.Room{}, invalidf("room status %q", status)
	}
	return s.store.Rooms().Update(ctx, id, func(r *domain.Room) error {
		r.Status = status
		return nil
	})
}

func (s *FrontDesk) SetBeds(ctx context.Context, id int, beds []domain.Bed) (domain.Room, error) {
	seen := map[int]bool{}
	for _, b := range beds {
		if b.BedNumber <= 0 || seen[b.BedNumber] {
			return domain.Room{}, invalidf("bed number %d", b.BedNumber)
		}
		seen[b.BedNumber] = true
	}
	return s.store.Rooms().Update(ctx, id, func(r *domain.Room) error {
		r.Beds = slices.Clone(beds)
		return nil
	})
}

// SetControls applies the fields present in c and leaves the others alone.
func (s *FrontDesk) SetControls(ctx context.Context, id int, c domain.RoomControls) (domain.Room, error) {
	return s.store.Rooms().Update(ctx, id, func(r *domain.Room) error {
		if c.LightsOn != nil {
			r.LightsOn = c.LightsOn
		}
		if c.ACOn != nil {
			r.ACOn = c.ACOn
		}
		if c.ACTemp != nil {
			r.ACTemp = c.ACTemp
		}
		if c.DoNotDisturb != nil {
			r.DoNotDisturb = c.DoNotDisturb
		}
		return nil
	})
}

// AssignBed puts booking bookingID into bed bedNumber of room roomID. An
// empty bookingID frees the bed.
func (s *FrontDesk) AssignBed(ctx context.Context, roomID, bedNumber int, bookingID string) (domain.Room, error) {
	var bookingRef, guestName *string
	if bookingID != "" {
		b, err := s.store.Bookings().Get(ctx, bookingID)
		if err != nil {
			return domain.Room{}, err
		}
		name := ""
		if g, err := s.store.Guests().Get(ctx, b.GuestID); err == nil {
			name = g.FullName
		}
		bookingRef, guestName = &b.ID, &name
	}
	return s.store.Rooms().Update(ctx, roomID, func(r *domain.Room) error {
		beds := slices.Clone(r.Beds)
		i := slices.IndexFunc(beds, func(b domain.Bed) bool { return b.BedNumber == bedNumber })
		if i < 0 {
			return fmt.Errorf("bed %d of room %d: %w", bedNumber, roomID, domain.ErrNotFound)
		}
		beds[i].BookingID, beds[i].GuestName = bookingRef, guestName
		r.Beds = beds
		return nil
	})
}

// ---- guests ----

func (s *FrontDesk) AddGuest(ctx context.Context, g domain.Guest) (domain.Guest, error) {
	if g.FullName == "" {
		return domain.Guest{}, invalidf("guest fullName is required")
	}
	g.ID = freshID("G", func(id string) bool { return s.store.Guests().Has(ctx, id) })
	g.ConciergeChatHistory = nil
	out, err := s.store.Guests().Insert(ctx, g)
	return out.Public(), err
}

// UpdateGuest replaces the guest profile. The stored password is kept when
// none is sent, and the concierge history is never taken from the client.
func (s *FrontDesk) UpdateGuest(ctx context.Context, id string, in domain.Guest) (domain.Guest, error) {
	out, err := s.store.Guests().Update(ctx, id, func(g *domain.Guest) error {
		in.ID = g.ID
		if in.Password == "" {
			in.Password = g.Password
		}
		in.ConciergeChatHistory = g.ConciergeChatHistory
		*g = in
		return nil
	})
	return out.Public(), err
}

func (s *FrontDesk) SetItinerary(ctx context.Context, id string, items []domain.ItineraryItem) (domain.Guest, error) {
	out, err := s.store.Guests().Update(ctx, id, func(g *domain.Guest) error {
		g.Itinerary = slices.Clone(items)
		return nil
	})
	return out.Public(), err
}

// ---- bookings ----

// AddBooking records a booking for an existing guest.
func (s *FrontDesk) AddBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	if b.Status == "" {
		b.Status = domain.BookingConfirmed
	}
	if !b.Status.Valid() {
		return domain.Booking{}, invalidf("booking status %q", b.Status)
	}
	if !s.store.Guests().Has(ctx, b.GuestID) {
		return domain.Booking{}, invalidf("guest %q does not exist", b.GuestID)
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = domain.PaymentPending
	}
	b.ID = freshID("B", func(id string) bool { return s.store.Bookings().Has(ctx, id) })
	return s.store.Bookings().Insert(ctx, b)
}

// CreateBookingWithNewGuest appends a new guest and then a booking that
// references it. Both ids are fresh; pricing uses fixed defaults.
func (s *FrontDesk) CreateBookingWithNewGuest(ctx context.Context, bd domain.BookingDraft, gd domain.GuestDraft) (domain.Booking, domain.Guest, error) {
	g := domain.Guest{
		ID:       freshID("G", func(id string) bool { return s.store.Guests().Has(ctx, id) }),
		FullName: gd.FullName,
		Email:    gd.Email,
		Phone:    gd.Phone,
		CPF:      gd.CPF,
		Password: gd.Password,
	}
	g, err := s.store.Guests().Insert(ctx, g)
	if err != nil {
		return domain.Booking{}, domain.Guest{}, err
	}

	source := bd.Source
	if source == "" {
		source = "Website"
	}
	b := domain.Booking{
		ID:            freshID("B", func(id string) bool { return s.store.Bookings().Has(ctx, id) }),
		GuestID:       g.ID,
		RoomID:        bd.RoomID,
		RatePlanID:    bd.RatePlanID,
		CheckIn:       bd.CheckIn,
		CheckOut:      bd.CheckOut,
		NumGuests:     bd.NumGuests,
		Source:        source,
		AddOns:        s.resolveAddOns(ctx, bd.AddOnIDs),
		TotalPrice:    newGuestBookingTotal,
		Balance:       newGuestBookingBalance,
		PaymentStatus: domain.PaymentPaid,
		Status:        domain.BookingConfirmed,
	}
	b, err = s.store.Bookings().Insert(ctx, b)
	if err != nil {
		return domain.Booking{}, domain.Guest{}, err
	}
	log.Info().Str("booking", b.ID).Str("guest", g.ID).Int("room", b.RoomID).Msg("booking created with new guest")
	return b, g.Public(), nil
}

func (s *FrontDesk) resolveAddOns(ctx context.Context, ids []string) []domain.AddOn {
	if len(ids) == 0 {
		return nil
	}
	var out []domain.AddOn
	for _, a := range s.store.AddOns().List(ctx) {
		if slices.Contains(ids, a.ID) {
			out = append(out, a)
		}
	}
	return out
}

func (s *FrontDesk) UpdateBooking(ctx context.Context, id string, in domain.Booking) (domain.Booking, error) {
	if in.Status != "" && !in.Status.Valid() {
		return domain.Booking{}, invalidf("booking status %q", in.Status)
	}
	return s.store.Bookings().Update(ctx, id, func(b *domain.Booking) error {
		in.ID = b.ID
		if in.Status == "" {
			in.Status = b.Status
		}
		if in.GuestID == "" {
			in.GuestID = b.GuestID
		}
		*b = in
		return nil
	})
}

// CheckIn marks the booking checked in and its room occupied.
func (s *FrontDesk) CheckIn(ctx context.Context, id string) (domain.Booking, error) {
	b, err := s.setBookingStatus(ctx, id, domain.BookingCheckedIn)
	if err != nil {
		return domain.Booking{}, err
	}
	s.syncRoom(ctx, b.RoomID, domain.RoomOccupied)
	return b, nil
}

// CheckOut marks the booking checked out and sends its room to cleaning.
func (s *FrontDesk) CheckOut(ctx context.Context, id string) (domain.Booking, error) {
	b, err := s.setBookingStatus(ctx, id, domain.BookingCheckedOut)
	if err != nil {
		return domain.Booking{}, err
	}
	s.syncRoom(ctx, b.RoomID, domain.RoomCleaning)
	return b, nil
}

func (s *FrontDesk) PayBalance(ctx context.Context, id string) (domain.Booking, error) {
	return s.store.Bookings().Update(ctx, id, func(b *domain.Booking) error {
		b.Balance = 0
		b.PaymentStatus = domain.PaymentPaid
		return nil
	})
}

func (s *FrontDesk) AcknowledgeRules(ctx context.Context, id string) (domain.Booking, error) {
	return s.store.Bookings().Update(ctx, id, func(b *domain.Booking) error {
		ack := true
		b.RulesAcknowledged = &ack
		return nil
	})
}

// OnlineCheckin stores the pre-arrival documents and pre-checks the booking in.
func (s *FrontDesk) OnlineCheckin(ctx context.Context, id string, oc domain.OnlineCheckin) (domain.Booking, error) {
	if oc.IDPhotoURL == "" || oc.SignatureURL == "" {
		return domain.Booking{}, invalidf("idPhotoUrl and signatureUrl are required")
	}
	return s.store.Bookings().Update(ctx, id, func(b *domain.Booking) error {
		b.IDPhotoURL = oc.IDPhotoURL
		b.SignatureURL = oc.SignatureURL
		b.Status = domain.BookingPreCheckedIn
		return nil
	})
}

func (s *FrontDesk) setBookingStatus(ctx context.Context, id string, st domain.BookingStatus) (domain.Booking, error) {
	return s.store.Bookings().Update(ctx, id, func(b *domain.Booking) error {
		b.Status = st
		return nil
	})
}

func (s *FrontDesk) syncRoom(ctx context.Context, roomID int, st domain.RoomStatus) {
	if _, err := s.store.Rooms().Update(ctx, roomID, func(r *domain.Room) error {
		r.Status = st
		return nil
	}); err != nil {
		log.Warn().Err(err).Int("room", roomID).Str("status", string(st)).Msg("room status not synced")
	}
}

// ---- reviews ----

func (s *FrontDesk) AddReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	if r.Rating < 1 || r.Rating > 5 {
		return domain.Review{}, invalidf("rating must be between 1 and 5")
	}
	r.ID = freshID("R", func(id string) bool { return s.store.Reviews().Has(ctx, id) })
	r.Status = domain.ReviewPending
	if r.Date == "" {
		r.Date = s.today()
	}
	out, err := s.store.Reviews().Insert(ctx, r)
	if err != nil {
		return domain.Review{}, err
	}
	if r.BookingID != "" {
		if _, err := s.store.Bookings().Update(ctx, r.BookingID, func(b *domain.Booking) error {
			b.ReviewID = out.ID
			return nil
		}); err != nil {
			log.Warn().Err(err).Str("review", out.ID).Str("booking", r.BookingID).Msg("review not linked to booking")
		}
	}
	return out, nil
}

func (s *FrontDesk) ApproveReview(ctx context.Context, id string) (domain.Review, error) {
	return s.setReviewStatus(ctx, id, domain.ReviewApproved)
}

func (s *FrontDesk) RejectReview(ctx context.Context, id string) (domain.Review, error) {
	return s.setReviewStatus(ctx, id, domain.ReviewRejected)
}

func (s *FrontDesk) setReviewStatus(ctx context.Context, id string, st domain.ReviewStatus) (domain.Review, error) {
	return s.store.Reviews().Update(ctx, id, func(r *domain.Review) error {
		r.Status = st
		return nil
	})
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrValidation}, args...)...)
}
