package build

import "pcbanai/core/internal/domain"

func strptr(s string) *string {
	return &s
}

func component(id string, category domain.Category) domain.Component {
	return domain.Component{
		ID:             id,
		Name:           id,
		LocalizedName:  id,
		Brand:          domain.UnknownBrand,
		Category:       category,
		Specifications: map[string]any{"summary": ""},
	}
}

func priced(c domain.Component, prices ...domain.PriceEntry) domain.Component {
	c.Prices = prices
	return c
}

func price(amount int, inStock bool) domain.PriceEntry {
	return domain.PriceEntry{
		RetailerID:   "startech",
		RetailerName: "StarTech",
		Price:        amount,
		Currency:     domain.Currency,
		InStock:      inStock,
		Trend:        domain.TrendStable,
	}
}

func cpuWithSocket(id, socket string) domain.Component {
	c := component(id, domain.CategoryCPU)
	if socket != "" {
		c.Socket = strptr(socket)
	}
	return c
}

func boardWithSocket(id, socket string) domain.Component {
	c := component(id, domain.CategoryMotherboard)
	if socket != "" {
		c.Socket = strptr(socket)
	}
	return c
}

func ramWithType(id, memoryType string) domain.Component {
	c := component(id, domain.CategoryRAM)
	if memoryType != "" {
		c.MemoryType = strptr(memoryType)
	}
	return c
}

func psuRated(id string, watts int) domain.Component {
	c := component(id, domain.CategoryPSU)
	c.Specifications["wattage"] = watts
	return c
}
