package domain

import "time"

// Currency is the only currency the platform quotes in.
const Currency = "BDT"

// UnknownBrand is the sentinel used when a retailer row carries no brand.
const UnknownBrand = "N/A"

// PriceTrend describes the recent movement of a retailer price.
type PriceTrend string

const (
	TrendUp     PriceTrend = "up"
	TrendDown   PriceTrend = "down"
	TrendStable PriceTrend = "stable"
)

// PriceEntry is one retailer listing for a component. A price of 0 means the
// price could not be extracted, not that the item is free.
type PriceEntry struct {
	RetailerID   string     `json:"retailerId"`
	RetailerName string     `json:"retailerName"`
	Price        int        `json:"price"`
	Currency     string     `json:"currency"`
	InStock      bool       `json:"inStock"`
	ProductURL   string     `json:"productUrl,omitempty"`
	LastUpdated  time.Time  `json:"lastUpdated"`
	ShippingCost int        `json:"shippingCost"`
	Warranty     string     `json:"warranty"`
	Rating       float64    `json:"rating"`
	Trend        PriceTrend `json:"trend"`
}

// Component is the canonical post-normalization record. The compatibility
// attributes (Socket, Chipset, MemoryType, FormFactor) are nil when unknown
// or inapplicable, which downstream rules treat differently from a parsed
// value.
type Component struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	LocalizedName    string         `json:"localizedName"`
	Brand            string         `json:"brand"`
	Category         Category       `json:"category"`
	Specifications   map[string]any `json:"specifications"`
	Prices           []PriceEntry   `json:"prices"`
	Images           []string       `json:"images"`
	PowerConsumption int            `json:"powerConsumption"`
	Socket           *string        `json:"socket"`
	Chipset          *string        `json:"chipset"`
	MemoryType       *string        `json:"memoryType"`
	FormFactor       *string        `json:"formFactor"`
	// FormFactors carries every form-factor substring matched in the spec
	// text. For cases this is the supported set; for motherboards only the
	// first entry is semantically meaningful (known data-quality limit of
	// the free-text heuristic).
	FormFactors []string `json:"formFactors,omitempty"`
}

// InStock reports whether any retailer currently lists the component as
// available.
func (c *Component) InStock() bool {
	for _, p := range c.Prices {
		if p.InStock {
			return true
		}
	}
	return false
}

// BestPrice is the cheapest known price among entries with an extracted
// price. 0 means no retailer exposed a usable price.
func (c *Component) BestPrice() int {
	best := 0
	for _, p := range c.Prices {
		if p.Price <= 0 {
			continue
		}
		if best == 0 || p.Price < best {
			best = p.Price
		}
	}
	return best
}

// RatedWattage returns the PSU's advertised capacity, or 0 for non-PSU
// components and PSUs whose capacity could not be parsed.
func (c *Component) RatedWattage() int {
	if c.Specifications == nil {
		return 0
	}
	switch w := c.Specifications["wattage"].(type) {
	case int:
		return w
	case float64:
		return int(w)
	}
	return 0
}
