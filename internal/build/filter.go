package build

import (
	"sort"

	"pcbanai/core/internal/domain"
)

// CompatibleCandidates narrows the full component list for a target slot down
// to candidates forward-compatible with what is already selected.
//
// The filter is permissive about unknown data: a candidate with a nil socket
// or memory type stays in the list, and the compatibility checker's warning
// is the authoritative signal. Hiding uncertain candidates would present a
// false "compatible" verdict by omission.
func CompatibleCandidates(all []domain.Component, target domain.Category, s *Selection) []domain.Component {
	candidates := make([]domain.Component, 0)
	for _, c := range all {
		if c.Category != target {
			continue
		}
		if compatibleWithSelection(c, target, s) {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

func compatibleWithSelection(c domain.Component, target domain.Category, s *Selection) bool {
	switch target {
	case domain.CategoryMotherboard:
		cpu := s.Component(domain.CategoryCPU)
		if cpu == nil || cpu.Socket == nil || c.Socket == nil {
			return true
		}
		return *c.Socket == *cpu.Socket
	case domain.CategoryCPU:
		motherboard := s.Component(domain.CategoryMotherboard)
		if motherboard == nil || motherboard.Socket == nil || c.Socket == nil {
			return true
		}
		return *c.Socket == *motherboard.Socket
	case domain.CategoryRAM:
		// Display convenience only; the checker remains the gate.
		motherboard := s.Component(domain.CategoryMotherboard)
		if motherboard == nil || motherboard.MemoryType == nil || c.MemoryType == nil {
			return true
		}
		return *c.MemoryType == *motherboard.MemoryType
	}
	return true
}

// InStockOnly keeps components that at least one retailer lists as available.
func InStockOnly(components []domain.Component) []domain.Component {
	available := make([]domain.Component, 0, len(components))
	for _, c := range components {
		if c.InStock() {
			available = append(available, c)
		}
	}
	return available
}

// SortStockFirst orders in-stock components ahead of out-of-stock ones,
// keeping the incoming order within each group.
func SortStockFirst(components []domain.Component) []domain.Component {
	sorted := make([]domain.Component, len(components))
	copy(sorted, components)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].InStock() && !sorted[j].InStock()
	})
	return sorted
}
