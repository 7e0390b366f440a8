package specparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pcbanai/core/internal/domain"
)

func TestSpec(t *testing.T) {
	tests := []struct {
		name  string
		specs string
		key   string
		want  string
		found bool
	}{
		{
			name:  "socket with trailing fields",
			specs: "Socket: AM5 | Cores: 6 | Threads: 12",
			key:   "Socket",
			want:  "AM5",
			found: true,
		},
		{
			name:  "value truncated at first comma",
			specs: "Socket Type: LGA1700, LGA1200 | Chipset: Z790",
			key:   "Socket",
			want:  "LGA1700",
			found: true,
		},
		{
			name:  "case insensitive key",
			specs: "chipset: B650 | Form Factor: ATX",
			key:   "Chipset",
			want:  "B650",
			found: true,
		},
		{
			name:  "missing key",
			specs: "Cores: 8 | Threads: 16",
			key:   "Socket",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Spec(tt.specs, tt.key)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryType(t *testing.T) {
	got, ok := MemoryType("16GB DDR5 6000MHz")
	assert.True(t, ok)
	assert.Equal(t, "DDR5", got)

	// DDR5 wins over DDR4 when both appear
	got, ok = MemoryType("supports ddr4 and DDR5 modules")
	assert.True(t, ok)
	assert.Equal(t, "DDR5", got)

	got, ok = MemoryType("ddr3 1600")
	assert.True(t, ok)
	assert.Equal(t, "DDR3", got)

	_, ok = MemoryType("16GB 6000MHz CL30")
	assert.False(t, ok)
}

func TestFormFactors(t *testing.T) {
	assert.Equal(t, []string{"ATX"}, FormFactors("ATX Mid Tower"))
	assert.Equal(t, []string{"ATX", "Micro-ATX", "Mini-ITX"},
		FormFactors("Supports ATX, Micro ATX and Mini-ITX boards"))
	// "micro-atx" contains "atx", so both substrings hit
	assert.Equal(t, []string{"ATX", "Micro-ATX"}, FormFactors("Micro-ATX"))
	assert.Nil(t, FormFactors("E-AT board")) // no marker
}

func TestPSUWattage(t *testing.T) {
	assert.Equal(t, 750, PSUWattage("750W 80+ Gold", "Corsair RM750"))
	assert.Equal(t, 650, PSUWattage("", "Antec NeoECO 650w Modular"))
	// outside the plausible band
	assert.Equal(t, 0, PSUWattage("9W", ""))
	assert.Equal(t, 0, PSUWattage("5000W", ""))
	assert.Equal(t, 0, PSUWattage("fully modular", "no rating here"))
}

func TestEstimatePower(t *testing.T) {
	tests := []struct {
		category domain.Category
		name     string
		want     int
	}{
		{domain.CategoryCPU, "Intel Core i9-14900K", 150},
		{domain.CategoryCPU, "AMD Ryzen 7 7700X", 125},
		{domain.CategoryCPU, "AMD Ryzen 5 7600", 95},
		{domain.CategoryCPU, "Intel Core i3-12100F", 65},
		{domain.CategoryCPU, "Intel Pentium Gold G7400", 80},
		{domain.CategoryGPU, "GIGABYTE RTX 4090 Gaming OC", 450},
		{domain.CategoryGPU, "Sapphire RX 7900 XT Pulse", 320},
		{domain.CategoryGPU, "MSI RTX 4070 Ventus", 250},
		{domain.CategoryGPU, "ASUS RTX 4060 Dual", 160},
		{domain.CategoryGPU, "GT 1030", 200},
		{domain.CategoryRAM, "Corsair Vengeance 16GB", 10},
		{domain.CategoryStorage, "Samsung 980 Pro 1TB", 10},
		{domain.CategoryCase, "NZXT H510", 0},
		{domain.CategoryMotherboard, "ASUS TUF B650-Plus", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimatePower(tt.category, tt.name))
		})
	}
}
