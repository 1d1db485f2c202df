package models

// Portion selectors for catalog nutrient profiles.
const (
    PortionPerServing = "per_serving"
    PortionPer100G    = "per_100g"
)

// Nutrients is one nutrient profile of a catalog entry (per serving or per 100g).
type Nutrients struct {
    Calories float64 `json:"calories"`
    ProteinG float64 `json:"protein_g"`
    CarbsG   float64 `json:"carbs_g"`
    FatG     float64 `json:"fat_g"`
    FiberG   float64 `json:"fiber_g"`
    SugarG   float64 `json:"sugar_g"`
    SodiumMg float64 `json:"sodium_mg"`
}

// FoodRecord is a catalog entry from the static food database. Catalog
// entries are loaded once and never persisted or mutated.
type FoodRecord struct {
    Key        string    `json:"-"`
    Name       string    `json:"name"`
    PerServing Nutrients `json:"per_serving"`
    Per100G    Nutrients `json:"per_100g"`
}

// Portion returns the nutrient profile for the given portion type,
// defaulting to per-serving.
func (f *FoodRecord) Portion(portionType string) Nutrients {
    if portionType == PortionPer100G {
        return f.Per100G
    }
    return f.PerServing
}
