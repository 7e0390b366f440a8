// Package build holds the in-progress build: the slot selection store and the
// pure functions derived from it (pricing, wattage, compatibility, candidate
// filtering, share codes). A Selection is owned by a single session; there is
// no concurrent writer and no locking.
package build

import "pcbanai/core/internal/domain"

// Selection maps each build slot to its chosen components. Single-slot
// categories hold at most one entry; ram and storage hold an ordered,
// id-deduplicated sequence.
type Selection struct {
	slots map[domain.Category][]domain.Component
}

func NewSelection() *Selection {
	return &Selection{
		slots: make(map[domain.Category][]domain.Component),
	}
}

// Select places a component into its category's slot. Multi-slot categories
// append unless the same id is already present; single-slot categories
// replace. Select always sets; deselection is Remove's job.
func (s *Selection) Select(c domain.Component) {
	if !c.Category.IsValid() {
		return
	}
	if !c.Category.MultiSlot() {
		s.slots[c.Category] = []domain.Component{c}
		return
	}
	for _, existing := range s.slots[c.Category] {
		if existing.ID == c.ID {
			return
		}
	}
	s.slots[c.Category] = append(s.slots[c.Category], c)
}

// Remove unsets the component with the given id from a slot. Multi-slot
// sequences that become empty are unset entirely; removing an id that is not
// present is a no-op.
func (s *Selection) Remove(id string, slot domain.Category) {
	current, ok := s.slots[slot]
	if !ok {
		return
	}
	if !slot.MultiSlot() {
		if current[0].ID == id {
			delete(s.slots, slot)
		}
		return
	}
	remaining := current[:0:0]
	for _, c := range current {
		if c.ID != id {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(s.slots, slot)
		return
	}
	s.slots[slot] = remaining
}

// Clear resets every slot.
func (s *Selection) Clear() {
	s.slots = make(map[domain.Category][]domain.Component)
}

// Component returns the single occupant of a slot, or nil when unset. For
// multi-slot categories it returns the first entry.
func (s *Selection) Component(slot domain.Category) *domain.Component {
	current := s.slots[slot]
	if len(current) == 0 {
		return nil
	}
	return &current[0]
}

// Components returns the full sequence selected for a slot.
func (s *Selection) Components(slot domain.Category) []domain.Component {
	return s.slots[slot]
}

// All flattens every slot into one sequence, in the fixed category order.
func (s *Selection) All() []domain.Component {
	var all []domain.Component
	for _, category := range domain.Categories {
		all = append(all, s.slots[category]...)
	}
	return all
}

// IDsBySlot projects the selection down to slot -> component ids, the shape
// shared builds are encoded from.
func (s *Selection) IDsBySlot() map[domain.Category][]string {
	projection := make(map[domain.Category][]string, len(s.slots))
	for category, components := range s.slots {
		ids := make([]string, 0, len(components))
		for _, c := range components {
			ids = append(ids, c.ID)
		}
		projection[category] = ids
	}
	return projection
}

// Summary is the derived snapshot recomputed after every mutation.
type Summary struct {
	Slots         map[domain.Category][]domain.Component `json:"slots"`
	TotalPrice    int                                    `json:"totalPrice"`
	Wattage       int                                    `json:"wattage"`
	Compatibility Report                                 `json:"compatibility"`
}

// Summarize recomputes price, wattage and compatibility from scratch. No
// incremental state: the snapshot is a pure function of the selection.
func Summarize(s *Selection) Summary {
	slots := make(map[domain.Category][]domain.Component, len(s.slots))
	for category, components := range s.slots {
		slots[category] = components
	}
	return Summary{
		Slots:         slots,
		TotalPrice:    TotalPrice(s),
		Wattage:       TotalWattage(s),
		Compatibility: Check(s),
	}
}
