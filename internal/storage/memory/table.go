package memory

import (
	"context"
	"fmt"
	"sync"

	"hostel_pms/internal/domain"
)

// Table is one indexed collection. Rows are keyed by id for O(1) lookups and
// listed in insertion order. Values are copied shallowly in and out, so a
// mutator must replace slice fields instead of editing their elements.
type Table[K comparable, V domain.Keyed[K]] struct {
	name  string
	mu    *sync.RWMutex
	rows  map[K]*V
	order []K
}

func newTable[K comparable, V domain.Keyed[K]](name string, mu *sync.RWMutex, seed []V) *Table[K, V] {
	t := &Table[K, V]{name: name, mu: mu, rows: make(map[K]*V, len(seed))}
	for _, v := range seed {
		t.insertLocked(v)
	}
	return t
}

func (t *Table[K, V]) List(ctx context.Context) []V {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.valuesLocked()
}

func (t *Table[K, V]) Get(ctx context.Context, id K) (V, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero V
		return zero, t.notFound(id)
	}
	return *row, nil
}

func (t *Table[K, V]) Has(ctx context.Context, id K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok
}

func (t *Table[K, V]) Insert(ctx context.Context, v V) (V, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.rows[v.Key()]; dup {
		var zero V
		return zero, fmt.Errorf("%w: %s %v already exists", domain.ErrValidation, t.name, v.Key())
	}
	t.insertLocked(v)
	return v, nil
}

// Update applies mutate to a copy of the row and stores it only if mutate
// succeeds. The id cannot change.
func (t *Table[K, V]) Update(ctx context.Context, id K, mutate func(*V) error) (V, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero V
	row, ok := t.rows[id]
	if !ok {
		return zero, t.notFound(id)
	}
	next := *row
	if err := mutate(&next); err != nil {
		return zero, err
	}
	if next.Key() != id {
		return zero, fmt.Errorf("%w: %s id is immutable", domain.ErrValidation, t.name)
	}
	*row = next
	return next, nil
}

func (t *Table[K, V]) Delete(ctx context.Context, id K) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return t.notFound(id)
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *Table[K, V]) insertLocked(v V) {
	row := v
	t.rows[v.Key()] = &row
	t.order = append(t.order, v.Key())
}

func (t *Table[K, V]) valuesLocked() []V {
	out := make([]V, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, *t.rows[k])
	}
	return out
}

func (t *Table[K, V]) notFound(id K) error {
	return fmt.Errorf("%s %v: %w", t.name, id, domain.ErrNotFound)
}
