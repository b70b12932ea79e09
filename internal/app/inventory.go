package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"hostel_pms/internal/domain"
)

// StockReceipt is one delivered product line.
type StockReceipt struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddShoppingListItem appends a pending item to the newest open list, or to
// a new list when every list is completed.
func (s *BackOffice) AddShoppingListItem(ctx context.Context, it domain.ShoppingListItem) (domain.ShoppingList, error) {
	if it.Name == "" {
		return domain.ShoppingList{}, invalidf("shopping item name is required")
	}
	if it.ProductID != "" && !s.store.Products().Has(ctx, it.ProductID) {
		return domain.ShoppingList{}, invalidf("product %q does not exist", it.ProductID)
	}
	it.ID = newID("SLI")
	it.Status = domain.ShoppingPending

	var open string
	for _, l := range s.store.ShoppingLists().List(ctx) {
		if l.Status != domain.ShoppingListCompleted {
			open = l.ID
		}
	}
	if open != "" {
		out, err := s.store.ShoppingLists().Update(ctx, open, func(l *domain.ShoppingList) error {
			l.Items = append(slices.Clone(l.Items), it)
			return nil
		})
		if err == nil {
			return out, nil
		}
		log.Warn().Err(err).Str("list", open).Msg("open shopping list vanished; starting a new one")
	}
	ts := s.stamp()
	return s.store.ShoppingLists().Insert(ctx, domain.ShoppingList{
		ID:        freshID("SL", func(id string) bool { return s.store.ShoppingLists().Has(ctx, id) }),
		Name:      "Shopping list " + ts[:len("2006-01-02")],
		Status:    domain.ShoppingListOpen,
		CreatedAt: ts,
		Items:     []domain.ShoppingListItem{it},
	})
}

// SetShoppingItemStatus marks one item and recomputes its list's status.
func (s *BackOffice) SetShoppingItemStatus(ctx context.Context, itemID string, st domain.ShoppingItemStatus) (domain.ShoppingList, error) {
	if !st.Valid() {
		return domain.ShoppingList{}, invalidf("shopping item status %q", st)
	}
	for _, l := range s.store.ShoppingLists().List(ctx) {
		if !slices.ContainsFunc(l.Items, func(i domain.ShoppingListItem) bool { return i.ID == itemID }) {
			continue
		}
		return s.store.ShoppingLists().Update(ctx, l.ID, func(l *domain.ShoppingList) error {
			l.Items = slices.Clone(l.Items)
			for i := range l.Items {
				if l.Items[i].ID == itemID {
					l.Items[i].Status = st
				}
			}
			l.Status = listStatus(l.Items)
			return nil
		})
	}
	return domain.ShoppingList{}, fmt.Errorf("shopping item %s: %w", itemID, domain.ErrNotFound)
}

func listStatus(items []domain.ShoppingListItem) string {
	for _, it := range items {
		if it.Status != domain.ShoppingBought {
			return domain.ShoppingListOpen
		}
	}
	return domain.ShoppingListCompleted
}

// ReceiveStock books a delivery into stock in one step and ticks off the
// pending shopping items that were waiting for those products.
func (s *BackOffice) ReceiveStock(ctx context.Context, in []StockReceipt) ([]domain.Product, error) {
	if len(in) == 0 {
		return nil, invalidf("delivery has no items")
	}
	moves := make([]domain.StockMove, 0, len(in))
	received := map[string]bool{}
	for _, r := range in {
		if r.Quantity <= 0 {
			return nil, invalidf("quantity of %s must be positive", r.ProductID)
		}
		moves = append(moves, domain.StockMove{ProductID: r.ProductID, Delta: r.Quantity})
		received[r.ProductID] = true
	}
	products, err := s.store.MoveStock(ctx, moves, nil)
	if err != nil {
		return nil, err
	}

	for _, l := range s.store.ShoppingLists().List(ctx) {
		if !slices.ContainsFunc(l.Items, func(i domain.ShoppingListItem) bool {
			return i.Status == domain.ShoppingPending && received[i.ProductID]
		}) {
			continue
		}
		if _, err := s.store.ShoppingLists().Update(ctx, l.ID, func(l *domain.ShoppingList) error {
			l.Items = slices.Clone(l.Items)
			for i := range l.Items {
				if received[l.Items[i].ProductID] {
					l.Items[i].Status = domain.ShoppingBought
				}
			}
			l.Status = listStatus(l.Items)
			return nil
		}); err != nil {
			log.Warn().Err(err).Str("list", l.ID).Msg("shopping list not updated after delivery")
		}
	}
	log.Info().Int("lines", len(in)).Msg("stock received")
	return products, nil
}
