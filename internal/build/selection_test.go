package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbanai/core/internal/domain"
)

func TestSelectSingleSlotReplaces(t *testing.T) {
	s := NewSelection()
	s.Select(cpuWithSocket("cpu-1", "AM5"))
	s.Select(cpuWithSocket("cpu-2", "LGA1700"))

	selected := s.Component(domain.CategoryCPU)
	require.NotNil(t, selected)
	assert.Equal(t, "cpu-2", selected.ID)
	assert.Len(t, s.All(), 1)
}

func TestSelectMultiSlotAppendsAndDedupes(t *testing.T) {
	s := NewSelection()
	stick := ramWithType("ram-a", "DDR5")
	s.Select(stick)
	s.Select(ramWithType("ram-b", "DDR5"))
	// selecting the same stick twice keeps exactly one entry
	s.Select(stick)

	sticks := s.Components(domain.CategoryRAM)
	require.Len(t, sticks, 2)
	assert.Equal(t, "ram-a", sticks[0].ID)
	assert.Equal(t, "ram-b", sticks[1].ID)
}

func TestSelectInvalidCategoryIgnored(t *testing.T) {
	s := NewSelection()
	s.Select(component("x", domain.Category("keyboard")))
	assert.Empty(t, s.All())
}

func TestRemoveMultiSlot(t *testing.T) {
	s := NewSelection()
	s.Select(ramWithType("ram-a", "DDR5"))
	s.Select(ramWithType("ram-b", "DDR5"))

	s.Remove("ram-a", domain.CategoryRAM)
	sticks := s.Components(domain.CategoryRAM)
	require.Len(t, sticks, 1)
	assert.Equal(t, "ram-b", sticks[0].ID)

	// emptied sequences are unset, not retained empty
	s.Remove("ram-b", domain.CategoryRAM)
	assert.Nil(t, s.Components(domain.CategoryRAM))
}

func TestRemoveSingleSlotOnlyOnIDMatch(t *testing.T) {
	s := NewSelection()
	s.Select(cpuWithSocket("cpu-1", "AM5"))

	s.Remove("cpu-other", domain.CategoryCPU)
	assert.NotNil(t, s.Component(domain.CategoryCPU))

	s.Remove("cpu-1", domain.CategoryCPU)
	assert.Nil(t, s.Component(domain.CategoryCPU))
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := NewSelection()
	s.Select(ramWithType("ram-a", "DDR5"))

	s.Remove("ram-ghost", domain.CategoryRAM)
	assert.Len(t, s.Components(domain.CategoryRAM), 1)

	s.Remove("anything", domain.CategoryGPU)
	assert.Len(t, s.All(), 1)
}

func TestClear(t *testing.T) {
	s := NewSelection()
	s.Select(cpuWithSocket("cpu-1", "AM5"))
	s.Select(ramWithType("ram-a", "DDR5"))
	s.Clear()
	assert.Empty(t, s.All())
}

func TestIDsBySlot(t *testing.T) {
	s := NewSelection()
	s.Select(cpuWithSocket("cpu-1", "AM5"))
	s.Select(ramWithType("ram-a", "DDR5"))
	s.Select(ramWithType("ram-b", "DDR5"))

	projection := s.IDsBySlot()
	assert.Equal(t, []string{"cpu-1"}, projection[domain.CategoryCPU])
	assert.Equal(t, []string{"ram-a", "ram-b"}, projection[domain.CategoryRAM])
}

func TestSummarize(t *testing.T) {
	s := NewSelection()
	cpu := cpuWithSocket("cpu-1", "AM5")
	cpu.PowerConsumption = 95
	s.Select(priced(cpu, price(25000, true)))

	summary := Summarize(s)
	assert.Equal(t, 25000, summary.TotalPrice)
	assert.Equal(t, 95, summary.Wattage)
	assert.True(t, summary.Compatibility.IsCompatible)
	assert.Len(t, summary.Slots[domain.CategoryCPU], 1)
}
