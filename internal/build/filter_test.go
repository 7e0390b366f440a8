package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbanai/core/internal/domain"
)

func TestCompatibleCandidatesMotherboardsForSelectedCPU(t *testing.T) {
	all := []domain.Component{
		boardWithSocket("mb-am5", "AM5"),
		boardWithSocket("mb-lga", "LGA1700"),
		boardWithSocket("mb-unknown", ""), // unknown socket stays listed
		cpuWithSocket("cpu-x", "AM5"),     // wrong category, never a candidate
	}

	s := NewSelection()
	s.Select(cpuWithSocket("cpu-1", "AM5"))

	candidates := CompatibleCandidates(all, domain.CategoryMotherboard, s)
	require.Len(t, candidates, 2)
	assert.Equal(t, "mb-am5", candidates[0].ID)
	assert.Equal(t, "mb-unknown", candidates[1].ID)
}

func TestCompatibleCandidatesCPUsForSelectedMotherboard(t *testing.T) {
	all := []domain.Component{
		cpuWithSocket("cpu-am5", "AM5"),
		cpuWithSocket("cpu-lga", "LGA1700"),
	}

	s := NewSelection()
	s.Select(boardWithSocket("mb-1", "LGA1700"))

	candidates := CompatibleCandidates(all, domain.CategoryCPU, s)
	require.Len(t, candidates, 1)
	assert.Equal(t, "cpu-lga", candidates[0].ID)
}

func TestCompatibleCandidatesRAMAdvisoryFilter(t *testing.T) {
	all := []domain.Component{
		ramWithType("ram-ddr5", "DDR5"),
		ramWithType("ram-ddr4", "DDR4"),
		ramWithType("ram-unknown", ""),
	}

	board := boardWithSocket("mb-1", "AM5")
	board.MemoryType = strptr("DDR5")
	s := NewSelection()
	s.Select(board)

	candidates := CompatibleCandidates(all, domain.CategoryRAM, s)
	require.Len(t, candidates, 2)
	assert.Equal(t, "ram-ddr5", candidates[0].ID)
	assert.Equal(t, "ram-unknown", candidates[1].ID)
}

func TestCompatibleCandidatesNoNarrowingForOtherSlots(t *testing.T) {
	all := []domain.Component{
		component("gpu-1", domain.CategoryGPU),
		component("gpu-2", domain.CategoryGPU),
	}

	s := NewSelection()
	s.Select(cpuWithSocket("cpu-1", "AM5"))

	assert.Len(t, CompatibleCandidates(all, domain.CategoryGPU, s), 2)
}

func TestCompatibleCandidatesEmptySelection(t *testing.T) {
	all := []domain.Component{
		boardWithSocket("mb-am5", "AM5"),
		boardWithSocket("mb-lga", "LGA1700"),
	}

	assert.Len(t, CompatibleCandidates(all, domain.CategoryMotherboard, NewSelection()), 2)
}

func TestInStockOnly(t *testing.T) {
	all := []domain.Component{
		priced(component("a", domain.CategoryGPU), price(50000, true)),
		priced(component("b", domain.CategoryGPU), price(0, false)),
		priced(component("c", domain.CategoryGPU), price(0, false), price(52000, true)),
	}

	available := InStockOnly(all)
	require.Len(t, available, 2)
	assert.Equal(t, "a", available[0].ID)
	assert.Equal(t, "c", available[1].ID)
}

func TestSortStockFirst(t *testing.T) {
	all := []domain.Component{
		priced(component("out-1", domain.CategoryGPU), price(0, false)),
		priced(component("in-1", domain.CategoryGPU), price(50000, true)),
		priced(component("out-2", domain.CategoryGPU), price(0, false)),
		priced(component("in-2", domain.CategoryGPU), price(52000, true)),
	}

	sorted := SortStockFirst(all)
	require.Len(t, sorted, 4)
	assert.Equal(t, "in-1", sorted[0].ID)
	assert.Equal(t, "in-2", sorted[1].ID)
	assert.Equal(t, "out-1", sorted[2].ID)
	assert.Equal(t, "out-2", sorted[3].ID)

	// input order untouched
	assert.Equal(t, "out-1", all[0].ID)
}
