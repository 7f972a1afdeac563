package wardrobe

import (
	"sync"

	"github.com/erazemk/garderoba/internal/model"
)

// Outfit is the in-memory selection of items for today. It is never persisted.
type Outfit struct {
	mu    sync.Mutex
	order []int64
	items map[int64]model.WardrobeItem
}

// NewOutfit returns an empty selection.
func NewOutfit() *Outfit {
	return &Outfit{items: make(map[int64]model.WardrobeItem)}
}

// Toggle selects item, or unselects it if it is already selected. It reports
// whether the item is selected afterwards.
func (o *Outfit) Toggle(item model.WardrobeItem) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.items[item.ID]; ok {
		o.remove(item.ID)
		return false
	}
	o.items[item.ID] = item
	o.order = append(o.order, item.ID)
	return true
}

// Remove unselects id and reports whether it was selected.
func (o *Outfit) Remove(id int64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.items[id]; !ok {
		return false
	}
	o.remove(id)
	return true
}

func (o *Outfit) remove(id int64) {
	delete(o.items, id)
	for i, v := range o.order {
		if v == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Refresh replaces the snapshot of item if it is selected.
func (o *Outfit) Refresh(item model.WardrobeItem) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.items[item.ID]; ok {
		o.items[item.ID] = item
	}
}

// Contains reports whether id is selected.
func (o *Outfit) Contains(id int64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	_, ok := o.items[id]
	return ok
}

// Items returns the selected items in selection order.
func (o *Outfit) Items() []model.WardrobeItem {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]model.WardrobeItem, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.items[id])
	}
	return out
}

// Len returns the number of selected items.
func (o *Outfit) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.order)
}

// Clear empties the selection.
func (o *Outfit) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.order = nil
	o.items = make(map[int64]model.WardrobeItem)
}
