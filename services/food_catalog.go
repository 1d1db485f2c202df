package services

import (
    "encoding/json"
    "fmt"
    "os"
    "sync"

    "github.com/AhmedZafar5533/fitness-sub000/models"
    "github.com/AhmedZafar5533/fitness-sub000/utils"
)

// FoodCatalog is the immutable mapping from canonical food key to nutrition
// facts. Construct one with NewFoodCatalog and inject it wherever lookups
// are needed; the backing dataset is read at most once per process
// (single-flight via sync.Once) and shared read-only afterwards.
type FoodCatalog struct {
    path string

    once  sync.Once
    err   error
    foods map[string]*models.FoodRecord
}

func NewFoodCatalog(path string) *FoodCatalog {
    return &FoodCatalog{path: path}
}

// Load reads and indexes the dataset on first call; later calls return the
// cached outcome. A missing or malformed dataset is a fatal condition for
// the caller to propagate, not retry.
func (c *FoodCatalog) Load() error {
    c.once.Do(func() {
        c.foods, c.err = loadFoodDataset(c.path)
    })
    return c.err
}

// Lookup returns the record for a canonical key. Pure map access; the only
// failure mode after a successful Load is "not found".
func (c *FoodCatalog) Lookup(key string) (*models.FoodRecord, bool) {
    rec, ok := c.foods[key]
    return rec, ok
}

// Size reports the number of distinct catalog entries.
func (c *FoodCatalog) Size() int {
    seen := map[*models.FoodRecord]struct{}{}
    for _, rec := range c.foods {
        seen[rec] = struct{}{}
    }
    return len(seen)
}

func loadFoodDataset(path string) (map[string]*models.FoodRecord, error) {
    raw, err := os.ReadFile(path)
    if err != nil {
        return nil, fmt.Errorf("read food dataset %s: %w", path, err)
    }

    var entries map[string]models.FoodRecord
    if err := json.Unmarshal(raw, &entries); err != nil {
        return nil, fmt.Errorf("parse food dataset %s: %w", path, err)
    }

    foods := make(map[string]*models.FoodRecord, len(entries))
    records := make([]*models.FoodRecord, 0, len(entries))
    for key, entry := range entries {
        rec := entry
        rec.Key = utils.NormalizeFoodKey(key)
        foods[rec.Key] = &rec
        records = append(records, &rec)
    }
    // Index display names too so free-text lookups hit entries whose
    // dataset key differs from their name. Canonical keys win collisions.
    for _, rec := range records {
        nameKey := utils.NormalizeFoodKey(rec.Name)
        if nameKey == "" || nameKey == rec.Key {
            continue
        }
        if _, taken := foods[nameKey]; !taken {
            foods[nameKey] = rec
        }
    }
    return foods, nil
}
