package domain

type Guest struct {
	ID                   string             `json:"id"`
	FullName             string             `json:"fullName"`
	Email                string             `json:"email"`
	Phone                string             `json:"phone"`
	CPF                  string             `json:"cpf"`
	Password             string             `json:"password,omitempty"`
	BirthDate            string             `json:"birthDate,omitempty"`
	Nationality          string             `json:"nationality,omitempty"`
	Gender               string             `json:"gender,omitempty"`
	Address              *Address           `json:"address,omitempty"`
	ProfilePictureURL    string             `json:"profilePictureUrl,omitempty"`
	Socials              *Socials           `json:"socials,omitempty"`
	Interests            []string           `json:"interests,omitempty"`
	PersonalitySummary   string             `json:"personalitySummary,omitempty"`
	Theme                string             `json:"theme,omitempty"`
	FavoriteTipIDs       []string           `json:"favoriteTipIds,omitempty"`
	Itinerary            []ItineraryItem    `json:"itinerary,omitempty"`
	UnlockedAchievements []string           `json:"unlockedAchievements,omitempty"`
	Points               *int               `json:"points,omitempty"`
	WeeklyPoints         *int               `json:"weeklyPoints,omitempty"`
	LastPostTimestamp    string             `json:"lastPostTimestamp,omitempty"`
	ConciergeChatHistory []ConciergeMessage `json:"conciergeChatHistory,omitempty"`
}

func (g Guest) Key() string { return g.ID }

// Public returns a copy safe to hand back to clients.
func (g Guest) Public() Guest {
	g.Password = ""
	return g
}

type Address struct {
	Street string `json:"street"`
	Number string `json:"number"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type Socials struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

type ItineraryItem struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	SourceID string `json:"sourceId"`
	Icon     string `json:"icon,omitempty"`
}
