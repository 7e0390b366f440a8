package build

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pcbanai/core/internal/domain"
)

func TestTotalPriceUsesCheapestUsablePrice(t *testing.T) {
	s := NewSelection()
	s.Select(priced(cpuWithSocket("cpu-1", "AM5"),
		price(26500, true),
		price(25000, true),
		price(0, false), // unextracted price must not win as "cheapest"
	))
	s.Select(priced(ramWithType("ram-a", "DDR5"), price(6200, true)))
	s.Select(priced(ramWithType("ram-b", "DDR5"), price(6400, true)))

	assert.Equal(t, 25000+6200+6400, TotalPrice(s))
}

func TestTotalPriceUnpricedComponentContributesZero(t *testing.T) {
	s := NewSelection()
	s.Select(priced(cpuWithSocket("cpu-1", "AM5"), price(0, true)))
	s.Select(priced(boardWithSocket("mb-1", "AM5"), price(18000, true)))

	assert.Equal(t, 18000, TotalPrice(s))
}

func TestTotalPriceEmptySelection(t *testing.T) {
	assert.Equal(t, 0, TotalPrice(NewSelection()))
}

func TestTotalWattage(t *testing.T) {
	s := NewSelection()

	cpu := cpuWithSocket("cpu-1", "AM5")
	cpu.PowerConsumption = 125
	s.Select(cpu)

	gpu := component("gpu-1", domain.CategoryGPU)
	gpu.PowerConsumption = 320
	s.Select(gpu)

	stickA := ramWithType("ram-a", "DDR5")
	stickA.PowerConsumption = 10
	s.Select(stickA)
	stickB := ramWithType("ram-b", "DDR5")
	stickB.PowerConsumption = 10
	s.Select(stickB)

	// missing power draw counts as 0
	s.Select(component("case-1", domain.CategoryCase))

	assert.Equal(t, 465, TotalWattage(s))
}
