package services

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AhmedZafar5533/fitness-sub000/logger"
	"github.com/AhmedZafar5533/fitness-sub000/models"
	"github.com/AhmedZafar5533/fitness-sub000/utils"
)

// Recommendation type discriminators.
const (
	RecAddMeal       = "add_meal"
	RecIncreaseWater = "increase_water"
	RecAdjustGoal    = "adjust_goal"
)

// Safety ranges for numeric recommendation fields.
const (
	maxRecommendations = 5

	maxMealCalories = 5000
	maxWaterMl      = 5000

	minCalorieGoal = 800
	maxCalorieGoal = 5000
	minWaterGoal   = 500
	maxWaterGoal   = 8000
)

// ValidatedRecommendation is a recommendation that passed validation: every
// field the executor reads is present and numerically sound. It is handed
// to the executor and never persisted.
type ValidatedRecommendation struct {
	Type string `json:"type"`

	// add_meal
	MealName    string  `json:"mealName,omitempty"`
	MealKey     string  `json:"mealKey,omitempty"`
	MealType    string  `json:"mealType,omitempty"`
	PortionType string  `json:"portionType,omitempty"`
	Calories    float64 `json:"calories,omitempty"`
	Protein     float64 `json:"protein,omitempty"`
	Carbs       float64 `json:"carbs,omitempty"`
	Fat         float64 `json:"fat,omitempty"`
	Fiber       float64 `json:"fiber,omitempty"`
	Sugar       float64 `json:"sugar,omitempty"`
	Sodium      float64 `json:"sodium,omitempty"`
	ImagePath   string  `json:"imagePath,omitempty"`

	// increase_water
	AmountMl float64 `json:"amount_ml,omitempty"`

	// adjust_goal
	GoalType string  `json:"goalType,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
}

// InvalidRecommendation pairs a rejected raw item with the rejection reason.
type InvalidRecommendation struct {
	Rec    any    `json:"rec,omitempty"`
	Reason string `json:"reason"`
}

// ValidationResult partitions a batch into accepted and rejected items,
// preserving relative order within each list.
type ValidationResult struct {
	Valid   []ValidatedRecommendation `json:"valid"`
	Invalid []InvalidRecommendation   `json:"invalid"`
}

// RecommendationValidator normalizes and safety-checks untrusted
// recommendation payloads against the food catalog and the user's dietary
// profile. Validation is purely functional given those inputs: no side
// effects, no partial commits.
type RecommendationValidator struct {
	db      *gorm.DB
	catalog *FoodCatalog
	policy  utils.ContentPolicy
}

func NewRecommendationValidator(db *gorm.DB, catalog *FoodCatalog, policy utils.ContentPolicy) *RecommendationValidator {
	if policy == nil {
		policy = utils.KeywordPolicy{}
	}
	return &RecommendationValidator{db: db, catalog: catalog, policy: policy}
}

// Validate checks a raw batch. Malformed content never returns an error;
// only infrastructure failures (catalog load, profile read) do.
func (v *RecommendationValidator) Validate(ctx context.Context, raw any, userID uint) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:   []ValidatedRecommendation{},
		Invalid: []InvalidRecommendation{},
	}

	items, ok := raw.([]any)
	if !ok {
		result.Invalid = append(result.Invalid, InvalidRecommendation{
			Reason: "recommendations must be an array",
		})
		return result, nil
	}

	items = dedupeAndCap(items, maxRecommendations)

	if err := v.catalog.Load(); err != nil {
		return nil, err
	}

	var user models.User
	if err := v.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	profile := utils.PolicyProfile{
		DietType:  user.DietType,
		Allergies: user.Allergies,
	}

	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			result.Invalid = append(result.Invalid, InvalidRecommendation{
				Rec: item, Reason: "invalid format",
			})
			continue
		}

		var validated *ValidatedRecommendation
		var reason string
		switch recType, _ := rec["type"].(string); recType {
		case RecAddMeal:
			validated, reason = v.validateAddMeal(rec, profile)
		case RecIncreaseWater:
			validated, reason = validateIncreaseWater(rec)
		case RecAdjustGoal:
			validated, reason = validateAdjustGoal(rec)
		default:
			reason = "unknown recommendation type"
		}

		if validated != nil {
			result.Valid = append(result.Valid, *validated)
		} else {
			result.Invalid = append(result.Invalid, InvalidRecommendation{Rec: rec, Reason: reason})
		}
	}

	if len(result.Invalid) > 0 {
		logger.Debug("rejected recommendations",
			zap.Uint("userID", userID),
			zap.Int("rejected", len(result.Invalid)))
	}
	return result, nil
}

func (v *RecommendationValidator) validateAddMeal(rec map[string]any, profile utils.PolicyProfile) (*ValidatedRecommendation, string) {
	name, _ := rec["mealName"].(string)
	if strings.TrimSpace(name) == "" {
		name, _ = rec["food"].(string)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "mealName missing"
	}

	key := utils.NormalizeFoodKey(name)
	food, matched := v.catalog.Lookup(key)

	if finding := v.policy.Screen(name, profile, matched); finding != nil {
		return nil, finding.Reason
	}

	portionType := models.PortionPerServing
	if pt, _ := rec["portionType"].(string); pt == models.PortionPer100G {
		portionType = models.PortionPer100G
	}

	out := ValidatedRecommendation{
		Type:        RecAddMeal,
		MealName:    name,
		PortionType: portionType,
		MealType:    models.MealSnack,
	}
	if mt, _ := rec["mealType"].(string); strings.TrimSpace(mt) != "" {
		out.MealType = strings.ToLower(strings.TrimSpace(mt))
	}
	if img, _ := rec["imagePath"].(string); img != "" {
		out.ImagePath = img
	}

	if matched {
		// Catalog data wins over any caller-supplied estimate.
		n := food.Portion(portionType)
		out.MealName = food.Name
		out.MealKey = food.Key
		out.Calories = n.Calories
		out.Protein = n.ProteinG
		out.Carbs = n.CarbsG
		out.Fat = n.FatG
		out.Fiber = n.FiberG
		out.Sugar = n.SugarG
		out.Sodium = n.SodiumMg
	} else {
		out.Calories = pickNumber(rec, "calories")
		out.Protein = pickNumber(rec, "protein_g", "protein")
		out.Carbs = pickNumber(rec, "carbs_g", "carbs")
		out.Fat = pickNumber(rec, "fat_g", "fat")
		out.Fiber = pickNumber(rec, "fiber_g", "fiber")
		out.Sugar = pickNumber(rec, "sugar_g", "sugar")
		out.Sodium = pickNumber(rec, "sodium_mg", "sodium")
	}

	if !(out.Calories > 0 && out.Calories < maxMealCalories) {
		return nil, "calories out of range or missing"
	}
	return &out, ""
}

func validateIncreaseWater(rec map[string]any) (*ValidatedRecommendation, string) {
	amount, ok := asNumber(firstPresent(rec, "amount_ml", "amount"))
	if !ok || amount <= 0 || amount > maxWaterMl {
		return nil, "invalid water amount"
	}
	return &ValidatedRecommendation{Type: RecIncreaseWater, AmountMl: amount}, ""
}

func validateAdjustGoal(rec map[string]any) (*ValidatedRecommendation, string) {
	goalType, _ := rec["goalType"].(string)
	goalType = strings.ToLower(strings.TrimSpace(goalType))
	if goalType != "calorie" && goalType != "water" {
		return nil, "invalid goalType"
	}

	amount, ok := asNumber(rec["amount"])
	if !ok || amount <= 0 {
		return nil, "invalid goal amount"
	}

	switch goalType {
	case "calorie":
		if amount < minCalorieGoal || amount > maxCalorieGoal {
			return nil, "calorie goal out of safe range"
		}
	case "water":
		if amount < minWaterGoal || amount > maxWaterGoal {
			return nil, "water goal out of safe range"
		}
	}
	return &ValidatedRecommendation{Type: RecAdjustGoal, GoalType: goalType, Amount: amount}, ""
}

// dedupeAndCap keeps first occurrences by structural equality (canonical
// JSON serialization; Go sorts map keys when marshaling) up to the cap.
// Excess and duplicate items are dropped silently, bounding generator
// fan-out before any per-item work happens.
func dedupeAndCap(items []any, limit int) []any {
	seen := make(map[string]struct{}, len(items))
	out := make([]any, 0, limit)
	for _, item := range items {
		if len(out) >= limit {
			break
		}
		key, err := json.Marshal(item)
		if err != nil {
			// Unserializable values can't collide structurally; keep them.
			out = append(out, item)
			continue
		}
		if _, dup := seen[string(key)]; dup {
			continue
		}
		seen[string(key)] = struct{}{}
		out = append(out, item)
	}
	return out
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

// pickNumber reads the first usable numeric value under any of the given
// keys, defaulting to 0 and clamping negatives to 0.
func pickNumber(m map[string]any, keys ...string) float64 {
	v, ok := asNumber(firstPresent(m, keys...))
	if !ok || v < 0 {
		return 0
	}
	return v
}

// asNumber coerces JSON scalars to a finite float64. Numeric strings are
// accepted since generators routinely quote numbers.
func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
