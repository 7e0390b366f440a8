// Package specparse extracts compatibility attributes from retailer free-text
// spec summaries and product names. Everything here is a best-effort heuristic
// over lossy text: callers get an explicit "not found" result (ok == false or
// a zero value) rather than a guessed value.
package specparse

import (
	"regexp"
	"strconv"
	"strings"

	"pcbanai/core/internal/domain"
)

// Wattage figures outside this band are treated as noise (amperage readings,
// model numbers) rather than a PSU capacity.
const (
	minPlausibleWatts = 10
	maxPlausibleWatts = 3000
)

var wattagePattern = regexp.MustCompile(`(\d+)\s*w`)

// Spec finds a "Key ...: value" entry in a pipe-separated spec summary.
// The value is truncated at the first comma and trimmed. ok is false when
// the key does not appear, which is distinct from a key with an empty value.
func Spec(specs, key string) (string, bool) {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(key) + `[^:]*:\s*([^|]+)`)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(specs)
	if m == nil {
		return "", false
	}
	value := strings.TrimSpace(strings.SplitN(m[1], ",", 2)[0])
	if value == "" {
		return "", false
	}
	return value, true
}

// Socket extracts the CPU/motherboard socket from a spec summary.
func Socket(specs string) (string, bool) {
	return Spec(specs, "Socket")
}

// Chipset extracts the motherboard chipset from a spec summary.
func Chipset(specs string) (string, bool) {
	return Spec(specs, "Chipset")
}

// MemoryType detects the DDR generation mentioned in a spec summary,
// newest generation first.
func MemoryType(specs string) (string, bool) {
	lower := strings.ToLower(specs)
	switch {
	case strings.Contains(lower, "ddr5"):
		return "DDR5", true
	case strings.Contains(lower, "ddr4"):
		return "DDR4", true
	case strings.Contains(lower, "ddr3"):
		return "DDR3", true
	}
	return "", false
}

// FormFactors collects every form-factor substring present in a spec summary,
// probed in a fixed order. Text mentioning several factors in passing yields
// several hits; only one can be the board's true size, so callers must treat
// the list as permissive rather than authoritative.
func FormFactors(specs string) []string {
	lower := strings.ToLower(specs)
	var factors []string
	if strings.Contains(lower, "atx") {
		factors = append(factors, "ATX")
	}
	if strings.Contains(lower, "micro-atx") || strings.Contains(lower, "micro atx") {
		factors = append(factors, "Micro-ATX")
	}
	if strings.Contains(lower, "mini-itx") || strings.Contains(lower, "mini itx") {
		factors = append(factors, "Mini-ITX")
	}
	return factors
}

// PSUWattage finds the rated capacity in the combined spec summary and product
// name. Matches outside the (10, 3000) exclusive band parse to 0.
func PSUWattage(specs, name string) int {
	combined := strings.ToLower(specs) + " " + strings.ToLower(name)
	m := wattagePattern.FindStringSubmatch(combined)
	if m == nil {
		return 0
	}
	watts, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	if watts > minPlausibleWatts && watts < maxPlausibleWatts {
		return watts
	}
	return 0
}

// EstimatePower maps known model-family markers in the product name to fixed
// wattage bands. Used only when the retailer row has no direct
// power_consumption field.
func EstimatePower(category domain.Category, name string) int {
	lower := strings.ToLower(name)
	switch category {
	case domain.CategoryCPU:
		switch {
		case strings.Contains(lower, "i9"), strings.Contains(lower, "ryzen 9"):
			return 150
		case strings.Contains(lower, "i7"), strings.Contains(lower, "ryzen 7"):
			return 125
		case strings.Contains(lower, "i5"), strings.Contains(lower, "ryzen 5"):
			return 95
		case strings.Contains(lower, "i3"), strings.Contains(lower, "ryzen 3"):
			return 65
		}
		return 80
	case domain.CategoryGPU:
		switch {
		case strings.Contains(lower, "4090"), strings.Contains(lower, "7900 xtx"):
			return 450
		case strings.Contains(lower, "4080"), strings.Contains(lower, "7900 xt"):
			return 320
		case strings.Contains(lower, "4070"), strings.Contains(lower, "7800 xt"):
			return 250
		case strings.Contains(lower, "4060"), strings.Contains(lower, "7700 xt"):
			return 160
		}
		return 200
	case domain.CategoryRAM, domain.CategoryStorage:
		return 10
	}
	return 0
}
