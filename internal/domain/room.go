package domain

type RoomType string

const (
	RoomSharedDorm    RoomType = "Shared Dorm"
	RoomPrivateSingle RoomType = "Private Single"
	RoomPrivateDouble RoomType = "Private Double"
	RoomPrivateCouple RoomType = "Private Couple"
	RoomPrivateTriple RoomType = "Private Triple"
	RoomPrivateQuad   RoomType = "Private Quad"
	RoomPrivateFamily RoomType = "Private Family"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomCleaning    RoomStatus = "Cleaning"
	RoomMaintenance RoomStatus = "Maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Type         RoomType   `json:"type"`
	Capacity     int        `json:"capacity"`
	BasePrice    float64    `json:"basePrice"`
	ImageURL     string     `json:"imageUrl"`
	Amenities    []string   `json:"amenities"`
	Status       RoomStatus `json:"status"`
	Occupants    []Occupant `json:"occupants,omitempty"`
	Beds         []Bed      `json:"beds,omitempty"`
	LightsOn     *bool      `json:"lightsOn,omitempty"`
	ACOn         *bool      `json:"acOn,omitempty"`
	ACTemp       *int       `json:"acTemp,omitempty"`
	DoNotDisturb *bool      `json:"doNotDisturb,omitempty"`
}

func (r Room) Key() int { return r.ID }

type Occupant struct {
	GuestID   string `json:"guestId"`
	GuestName string `json:"guestName"`
	BookingID string `json:"bookingId"`
}

// Bed is one sellable bed of a shared dorm; nil ids mean the bed is free.
type Bed struct {
	BedNumber int     `json:"bedNumber"`
	BookingID *string `json:"bookingId"`
	GuestName *string `json:"guestName"`
}

// RoomControls is the guest-portal patch for in-room devices.
type RoomControls struct {
	LightsOn     *bool `json:"lightsOn,omitempty"`
	ACOn         *bool `json:"acOn,omitempty"`
	ACTemp       *int  `json:"acTemp,omitempty"`
	DoNotDisturb *bool `json:"doNotDisturb,omitempty"`
}
