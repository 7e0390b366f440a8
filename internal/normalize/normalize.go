// Package normalize converts raw retailer rows into canonical Components.
// Normalization is total: malformed input degrades to empty/zero/nil fields,
// it never fails.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pcbanai/core/internal/domain"
	"pcbanai/core/internal/specparse"
)

// Row maps one raw retailer row onto the canonical Component shape. The raw
// sub-category key and retailer identity pin down the component's stable ID:
// the same (category, retailer, source row) always yields the same ID.
func Row(raw map[string]any, key domain.RawCategory, retailer domain.Retailer) domain.Component {
	category := key.Canonical()

	name := stringField(raw, "product_name")
	if name == "" {
		name = "Unknown"
	}
	specs := stringField(raw, "short_specs")
	productURL := stringField(raw, "product_url")

	price := parsePrice(raw["price_bdt"])
	availability := strings.ToLower(stringField(raw, "availability"))
	inStock := price > 0 || strings.Contains(availability, "in stock")

	brand := stringField(raw, "brand")
	if brand == "" {
		brand = domain.UnknownBrand
	}

	component := domain.Component{
		ID:            componentID(key, retailer, raw),
		Name:          name,
		LocalizedName: localizedName(raw, name),
		Brand:         brand,
		Category:      category,
		Specifications: map[string]any{
			"summary": specs,
		},
		Prices: []domain.PriceEntry{
			{
				RetailerID:   retailer.ID,
				RetailerName: retailer.Name,
				Price:        price,
				Currency:     domain.Currency,
				InStock:      inStock,
				ProductURL:   productURL,
				LastUpdated:  time.Now(),
				ShippingCost: intField(raw, "shipping_cost"),
				Warranty:     stringField(raw, "warranty"),
				Rating:       floatField(raw, "rating"),
				Trend:        domain.TrendStable,
			},
		},
	}

	if img := stringField(raw, "image_url"); img != "" {
		component.Images = []string{img}
	}

	applyCompatAttributes(&component, raw, specs)

	if category == domain.CategoryPSU {
		component.Specifications["wattage"] = specparse.PSUWattage(specs, name)
	}

	if direct := intField(raw, "power_consumption"); direct > 0 {
		component.PowerConsumption = direct
	} else {
		component.PowerConsumption = specparse.EstimatePower(category, name)
	}

	return component
}

// applyCompatAttributes fills socket/chipset/memory-type/form-factor.
// Explicit row columns win; the spec-text heuristics are the fallback.
func applyCompatAttributes(c *domain.Component, raw map[string]any, specs string) {
	if v := stringField(raw, "socket"); v != "" {
		c.Socket = &v
	} else if v, ok := specparse.Socket(specs); ok {
		c.Socket = &v
	}

	if v := stringField(raw, "chipset"); v != "" {
		c.Chipset = &v
	} else if v, ok := specparse.Chipset(specs); ok {
		c.Chipset = &v
	}

	if v := stringField(raw, "memory_type"); v != "" {
		c.MemoryType = &v
	} else if v, ok := specparse.MemoryType(specs); ok {
		c.MemoryType = &v
	}

	if v := stringField(raw, "form_factor"); v != "" {
		c.FormFactor = &v
		c.FormFactors = []string{v}
		return
	}
	c.FormFactors = specparse.FormFactors(specs)
	if len(c.FormFactors) > 0 {
		c.FormFactor = &c.FormFactors[0]
	}
}

// componentID derives the batch-unique ID from category, retailer and row
// identity: the row id when present, else the product URL's last segment,
// else the product name.
func componentID(key domain.RawCategory, retailer domain.Retailer, raw map[string]any) string {
	identity := stringField(raw, "id")
	if identity == "" {
		if url := stringField(raw, "product_url"); url != "" {
			segments := strings.Split(strings.TrimRight(url, "/"), "/")
			identity = segments[len(segments)-1]
		}
	}
	if identity == "" {
		identity = stringField(raw, "product_name")
	}
	return fmt.Sprintf("%s-%s-%s", key, retailer.ID, identity)
}

func localizedName(raw map[string]any, fallback string) string {
	if v := stringField(raw, "product_name_bn"); v != "" {
		return v
	}
	return fallback
}

// parsePrice strips every non-digit character and parses the remainder.
// Handles currency symbols and locale separators ("৳1,25,000" -> 125000).
func parsePrice(v any) int {
	var digits strings.Builder
	for _, r := range fmt.Sprint(v) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	price, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return price
}

func stringField(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case int, int32, int64, float64:
		return fmt.Sprint(s)
	}
	return ""
}

func intField(raw map[string]any, key string) int {
	switch n := raw[key].(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}

func floatField(raw map[string]any, key string) float64 {
	switch n := raw[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}
