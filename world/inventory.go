package world

import "github.com/elliotchance/orderedmap/v2"

// Inventory is the inventory of the local player. It is never synchronized; the actions that
// change it carry their outcome so every machine agrees on the world side of the change.
type Inventory struct {
	items    *orderedmap.OrderedMap[uint16, int]
	capacity int
}

// NewInventory returns an empty inventory holding at most capacity distinct kinds.
func NewInventory(capacity int) *Inventory {
	return &Inventory{items: orderedmap.NewOrderedMap[uint16, int](), capacity: capacity}
}

// Add adds qty items of the kind passed. False is returned if there is no room for a new kind.
func (inv *Inventory) Add(kind uint16, qty int) bool {
	if qty <= 0 {
		return false
	}
	count, ok := inv.items.Get(kind)
	if !ok && inv.capacity > 0 && inv.items.Len() >= inv.capacity {
		return false
	}
	inv.items.Set(kind, count+qty)
	return true
}

// Remove removes qty items of the kind passed, returning false if there are not enough.
func (inv *Inventory) Remove(kind uint16, qty int) bool {
	count, ok := inv.items.Get(kind)
	if !ok || count < qty {
		return false
	}
	if count == qty {
		inv.items.Delete(kind)
	} else {
		inv.items.Set(kind, count-qty)
	}
	return true
}

// Count returns the amount of items of the kind passed.
func (inv *Inventory) Count(kind uint16) int {
	count, _ := inv.items.Get(kind)
	return count
}

// Full returns true if no new kind of item fits.
func (inv *Inventory) Full() bool {
	return inv.capacity > 0 && inv.items.Len() >= inv.capacity
}

// Kinds returns the kinds of items held, in the order they were first added.
func (inv *Inventory) Kinds() []uint16 {
	return inv.items.Keys()
}
