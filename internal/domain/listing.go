package domain

// Listing is one scraped product card, in the shape the retailer tables
// store. The normalizer turns these rows back into Components when serving.
type Listing struct {
	ProductName      string `json:"product_name"`
	PriceBDT         int    `json:"price_bdt"`
	ProductURL       string `json:"product_url"`
	ImageURL         string `json:"image_url"`
	Availability     string `json:"availability"`
	Brand            string `json:"brand"`
	ShortSpecs       string `json:"short_specs"`
	PowerConsumption int    `json:"power_consumption"`
}
