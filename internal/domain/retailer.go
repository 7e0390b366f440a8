package domain

// Retailer identifies one listing source. The primary retailer owns the base
// tables (empty suffix); every other retailer mirrors them under a suffixed
// table name.
type Retailer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TableSuffix string `json:"tableSuffix,omitempty"`
}

// TableName resolves the retailer-specific table for a base table name.
func (r Retailer) TableName(base string) string {
	if r.TableSuffix == "" {
		return base
	}
	return base + r.TableSuffix
}
