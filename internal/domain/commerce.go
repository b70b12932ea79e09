package domain

type Product struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Category          string  `json:"category"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"lowStockThreshold"`
}

func (p Product) Key() string { return p.ID }

func (p Product) LowStock() bool { return p.Stock <= p.LowStockThreshold }

type SaleItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Transaction struct {
	ID            string     `json:"id"`
	Items         []SaleItem `json:"items"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	BookingID     string     `json:"bookingId,omitempty"`
	GuestName     string     `json:"guestName"`
	Timestamp     string     `json:"timestamp"`
}

func (t Transaction) Key() string { return t.ID }

type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func (e Expense) Key() string { return e.ID }

// PaymentRoomAccount charges a sale to the guest's booking balance.
const PaymentRoomAccount = "Room Account"

// StockMove changes the stock of one product by Delta (negative for sales).
type StockMove struct {
	ProductID string `json:"productId"`
	Delta     int    `json:"delta"`
}

type ShoppingItemStatus string

const (
	ShoppingPending ShoppingItemStatus = "Pending"
	ShoppingBought  ShoppingItemStatus = "Bought"
)

func (s ShoppingItemStatus) Valid() bool { return s == ShoppingPending || s == ShoppingBought }

type ShoppingListItem struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Category  string             `json:"category"`
	Status    ShoppingItemStatus `json:"status"`
	ProductID string             `json:"productId,omitempty"`
}

// ShoppingList groups purchase items; it is Completed once every item is
// bought.
type ShoppingList struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Status    string             `json:"status"`
	CreatedAt string             `json:"createdAt"`
	Items     []ShoppingListItem `json:"items"`
}

func (l ShoppingList) Key() string { return l.ID }

const (
	ShoppingListOpen      = "Pending"
	ShoppingListCompleted = "Completed"
)
