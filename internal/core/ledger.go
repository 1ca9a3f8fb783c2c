package core

import "math"

// ItemStack is a quantity of one item occupying a bag slot.
type ItemStack struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Bag is the player's inventory. Each distinct item id takes one slot;
// quantities of an item already held stack without using another slot.
// Slots <= 0 means the bag is unbounded.
type Bag struct {
	Slots int         `json:"slots"`
	Items []ItemStack `json:"items"`
}

// Clone returns a copy that shares no backing array with b.
func (b Bag) Clone() Bag {
	c := b
	if b.Items != nil {
		c.Items = append([]ItemStack(nil), b.Items...)
	}
	return c
}

// Full reports whether no free slot remains.
func (b Bag) Full() bool {
	return b.Slots > 0 && len(b.Items) >= b.Slots
}

// CanAdd reports whether itemID fits: either it already has a stack or a
// slot is free.
func (b Bag) CanAdd(itemID string) bool {
	return b.index(itemID) >= 0 || !b.Full()
}

// Count returns how many of itemID the bag holds.
func (b Bag) Count(itemID string) int {
	if i := b.index(itemID); i >= 0 {
		return b.Items[i].Quantity
	}
	return 0
}

// Add stores qty of itemID. It returns false, leaving the bag unchanged, when
// the item needs a new slot and none is free.
func (b *Bag) Add(itemID string, qty int) bool {
	if qty <= 0 {
		return true
	}
	if i := b.index(itemID); i >= 0 {
		b.Items[i].Quantity += qty
		return true
	}
	if b.Full() {
		return false
	}
	b.Items = append(b.Items, ItemStack{ItemID: itemID, Quantity: qty})
	return true
}

// Remove takes qty of itemID out of the bag, freeing the slot when the stack
// empties. It returns false and changes nothing if the bag holds fewer.
func (b *Bag) Remove(itemID string, qty int) bool {
	i := b.index(itemID)
	if i < 0 || b.Items[i].Quantity < qty {
		return false
	}
	b.Items[i].Quantity -= qty
	if b.Items[i].Quantity == 0 {
		b.Items = append(b.Items[:i], b.Items[i+1:]...)
	}
	return true
}

func (b Bag) index(itemID string) int {
	for i, st := range b.Items {
		if st.ItemID == itemID {
			return i
		}
	}
	return -1
}

// ResourceAmount returns the held amount of a resource.
func (s GameState) ResourceAmount(id string) int {
	return s.Resources[id].Amount
}

// ResourceRoom returns how much more of a resource fits under its cap.
func (s GameState) ResourceRoom(id string) int {
	r := s.Resources[id]
	if r.Cap <= 0 {
		return math.MaxInt
	}
	return max(0, r.Cap-r.Amount)
}

// AddResource adds up to amount of a resource, clamped to its cap, and
// returns the amount actually added. Call only on a cloned state.
func (s *GameState) AddResource(id string, amount int) int {
	if amount <= 0 {
		return 0
	}
	if s.Resources == nil {
		s.Resources = make(map[string]Resource)
	}
	added := min(amount, s.ResourceRoom(id))
	r := s.Resources[id]
	r.Amount += added
	s.Resources[id] = r
	return added
}

// SpendResource removes amount of a resource. It returns false and changes
// nothing if not enough is held.
func (s *GameState) SpendResource(id string, amount int) bool {
	r, ok := s.Resources[id]
	if !ok || r.Amount < amount {
		return amount <= 0
	}
	r.Amount -= amount
	s.Resources[id] = r
	return true
}

// RaiseResourceCap increases a resource's cap by delta. Uncapped resources
// stay uncapped.
func (s *GameState) RaiseResourceCap(id string, delta int) {
	if s.Resources == nil {
		s.Resources = make(map[string]Resource)
	}
	r := s.Resources[id]
	if r.Cap <= 0 {
		return
	}
	r.Cap += delta
	s.Resources[id] = r
}
