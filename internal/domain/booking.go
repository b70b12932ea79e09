package domain

type BookingStatus string

const (
	BookingConfirmed    BookingStatus = "Confirmed"
	BookingPending      BookingStatus = "Pending"
	BookingCheckedIn    BookingStatus = "Checked-in"
	BookingCheckedOut   BookingStatus = "Checked-out"
	BookingCancelled    BookingStatus = "Cancelled"
	BookingPreCheckedIn BookingStatus = "Pre-Checked-in"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingPending, BookingCheckedIn, BookingCheckedOut, BookingCancelled, BookingPreCheckedIn:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
)

type Booking struct {
	ID                string        `json:"id"`
	GuestID           string        `json:"guestId"`
	RoomID            int           `json:"roomId"`
	RatePlanID        string        `json:"ratePlanId"`
	CheckIn           string        `json:"checkIn"`
	CheckOut          string        `json:"checkOut"`
	NumGuests         int           `json:"numGuests"`
	TotalPrice        float64       `json:"totalPrice"`
	Status            BookingStatus `json:"status"`
	Source            string        `json:"source"`
	Balance           float64       `json:"balance"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	ReviewID          string        `json:"reviewId,omitempty"`
	IDPhotoURL        string        `json:"idPhotoUrl,omitempty"`
	SignatureURL      string        `json:"signatureUrl,omitempty"`
	RulesAcknowledged *bool         `json:"rulesAcknowledged,omitempty"`
	AddOns            []AddOn       `json:"addOns,omitempty"`
	GuestJourneyID    string        `json:"guestJourneyId,omitempty"`
}

func (b Booking) Key() string { return b.ID }

// BookingDraft is what the booking widget submits; pricing fields are
// filled in by the server.
type BookingDraft struct {
	RoomID     int      `json:"roomId"`
	CheckIn    string   `json:"checkIn"`
	CheckOut   string   `json:"checkOut"`
	NumGuests  int      `json:"numGuests"`
	RatePlanID string   `json:"ratePlanId"`
	Source     string   `json:"source,omitempty"`
	AddOnIDs   []string `json:"addOnIds,omitempty"`
}

type GuestDraft struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	CPF      string `json:"cpf"`
	Password string `json:"password,omitempty"`
}

// OnlineCheckin carries the documents collected by the pre-arrival flow.
type OnlineCheckin struct {
	IDPhotoURL   string `json:"idPhotoUrl"`
	SignatureURL string `json:"signatureUrl"`
}
