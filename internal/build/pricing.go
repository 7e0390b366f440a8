package build

// TotalPrice sums the cheapest usable price of every selected component.
// Components with no extractable price contribute 0 rather than blocking the
// total.
func TotalPrice(s *Selection) int {
	total := 0
	for _, c := range s.All() {
		total += c.BestPrice()
	}
	return total
}

// TotalWattage sums the power draw of every selected component, multi-slot
// sequences included.
func TotalWattage(s *Selection) int {
	total := 0
	for _, c := range s.All() {
		total += c.PowerConsumption
	}
	return total
}
