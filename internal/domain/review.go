package domain

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending"
	ReviewApproved ReviewStatus = "Approved"
	ReviewRejected ReviewStatus = "Rejected"
)

type Review struct {
	ID        string       `json:"id"`
	BookingID string       `json:"bookingId"`
	GuestID   string       `json:"guestId"`
	GuestName string       `json:"guestName"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	Date      string       `json:"date"`
	Status    ReviewStatus `json:"status"`
}

func (r Review) Key() string { return r.ID }
