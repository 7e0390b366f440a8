package domain

// Category is one of the 8 user-facing build slots.
type Category string

func (c Category) String() string {
	return string(c)
}

const (
	CategoryCPU         Category = "cpu"
	CategoryMotherboard Category = "motherboard"
	CategoryRAM         Category = "ram"
	CategoryGPU         Category = "gpu"
	CategoryStorage     Category = "storage"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
	CategoryCooling     Category = "cooling"
)

var Categories = []Category{
	CategoryCPU,
	CategoryMotherboard,
	CategoryRAM,
	CategoryGPU,
	CategoryStorage,
	CategoryPSU,
	CategoryCase,
	CategoryCooling,
}

// IsValid reports whether c is one of the 8 canonical categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MultiSlot reports whether a build may hold several components in this
// category (memory sticks, drives) rather than a single one.
func (c Category) MultiSlot() bool {
	return c == CategoryRAM || c == CategoryStorage
}

// RawCategory is a retailer-side sub-category key. Storage and cooling are
// split per retailer table (ssd/hdd, cpu/case coolers) and collapse to a
// single canonical Category at normalization time.
type RawCategory string

func (r RawCategory) String() string {
	return string(r)
}

const (
	RawCPU         RawCategory = "cpu"
	RawMotherboard RawCategory = "motherboard"
	RawRAM         RawCategory = "ram"
	RawGPU         RawCategory = "gpu"
	RawStorageSSD  RawCategory = "storage_ssd"
	RawStorageHDD  RawCategory = "storage_hdd"
	RawPSU         RawCategory = "psu"
	RawCase        RawCategory = "case"
	RawCoolingCPU  RawCategory = "cooling_cpu"
	RawCoolingCase RawCategory = "cooling_case"
)

var RawCategories = []RawCategory{
	RawCPU,
	RawMotherboard,
	RawRAM,
	RawGPU,
	RawStorageSSD,
	RawStorageHDD,
	RawPSU,
	RawCase,
	RawCoolingCPU,
	RawCoolingCase,
}

var rawToCanonical = map[RawCategory]Category{
	RawCPU:         CategoryCPU,
	RawMotherboard: CategoryMotherboard,
	RawRAM:         CategoryRAM,
	RawGPU:         CategoryGPU,
	RawStorageSSD:  CategoryStorage,
	RawStorageHDD:  CategoryStorage,
	RawPSU:         CategoryPSU,
	RawCase:        CategoryCase,
	RawCoolingCPU:  CategoryCooling,
	RawCoolingCase: CategoryCooling,
}

// Canonical collapses the raw sub-category into its user-facing category.
func (r RawCategory) Canonical() Category {
	return rawToCanonical[r]
}

// BaseTables maps each raw sub-category to the primary retailer's table name.
// Secondary retailers suffix these names (see Retailer.TableName).
var BaseTables = map[RawCategory]string{
	RawCPU:         "processors",
	RawMotherboard: "motherboards",
	RawRAM:         "rams",
	RawGPU:         "graphics_cards",
	RawStorageSSD:  "ssd_drives",
	RawStorageHDD:  "hdds",
	RawPSU:         "power_supplies",
	RawCase:        "casings",
	RawCoolingCPU:  "cpu_coolers",
	RawCoolingCase: "casing_coolers",
}

var canonicalToRaw = map[Category][]RawCategory{
	CategoryCPU:         {RawCPU},
	CategoryMotherboard: {RawMotherboard},
	CategoryRAM:         {RawRAM},
	CategoryGPU:         {RawGPU},
	CategoryStorage:     {RawStorageSSD, RawStorageHDD},
	CategoryPSU:         {RawPSU},
	CategoryCase:        {RawCase},
	CategoryCooling:     {RawCoolingCPU, RawCoolingCase},
}

// RawKeys expands a canonical category filter into the raw sub-categories it
// covers. Unknown categories expand to nothing.
func (c Category) RawKeys() []RawCategory {
	return canonicalToRaw[c]
}
