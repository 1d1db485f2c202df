package utils

import "strings"

// PolicyProfile is the slice of a user's profile the content policy reads.
type PolicyProfile struct {
    DietType  string
    Allergies []string
}

// Finding is a structured policy violation you can surface in the API.
type Finding struct {
    Code   string `json:"code"`
    Reason string `json:"reason"`
}

// ContentPolicy screens a proposed meal name against a user's dietary
// profile. trusted marks names that matched the food catalog, which skips
// the prohibited-item scan (trusted data source). Implementations return
// nil when the name is acceptable.
type ContentPolicy interface {
    Screen(mealName string, profile PolicyProfile, trusted bool) *Finding
}

// KeywordPolicy is the default ContentPolicy: case-insensitive substring
// matching against fixed keyword lists. This operates on the meal name
// string, not structured ingredient data, so it is a deliberately
// conservative heuristic (false positives preferred over misses), not a
// guaranteed safety boundary.
type KeywordPolicy struct{}

var (
    // Items no recommendation generator should be proposing as food.
    prohibitedKeywords = []string{
        "pill", "supplement", "medicine", "steroid", "capsule", "tablet", "drug",
    }

    // Meat terms conflict with every restricted diet.
    meatKeywords = []string{
        "chicken", "beef", "pork", "bacon", "lamb", "mutton", "turkey",
        "ham", "sausage", "steak", "veal", "duck", "pepperoni", "salami",
    }

    // Seafood additionally conflicts with vegetarian and vegan diets.
    seafoodKeywords = []string{
        "fish", "shrimp", "prawn", "salmon", "tuna", "crab", "lobster",
        "squid", "oyster", "anchovy", "sardine",
    }

    // Animal products additionally conflict with a vegan diet.
    animalProductKeywords = []string{
        "egg", "cheese", "milk", "butter", "yogurt", "yoghurt", "cream",
        "honey", "ghee", "paneer",
    }
)

func (KeywordPolicy) Screen(mealName string, profile PolicyProfile, trusted bool) *Finding {
    name := strings.ToLower(mealName)

    if !trusted && containsAny(name, prohibitedKeywords...) {
        return &Finding{Code: "prohibited_item", Reason: "prohibited item suggested"}
    }

    if f := screenDiet(name, strings.ToLower(strings.TrimSpace(profile.DietType))); f != nil {
        return f
    }

    for _, allergy := range profile.Allergies {
        a := strings.ToLower(strings.TrimSpace(allergy))
        if a != "" && strings.Contains(name, a) {
            return &Finding{Code: "allergy_conflict", Reason: "conflicts with user allergies"}
        }
    }

    return nil
}

func screenDiet(name, dietType string) *Finding {
    conflict := func() *Finding {
        return &Finding{Code: "diet_conflict", Reason: "conflicts with user diet"}
    }
    switch dietType {
    case "vegetarian":
        if containsAny(name, meatKeywords...) || containsAny(name, seafoodKeywords...) {
            return conflict()
        }
    case "vegan":
        if containsAny(name, meatKeywords...) ||
            containsAny(name, seafoodKeywords...) ||
            containsAny(name, animalProductKeywords...) {
            return conflict()
        }
    case "pescatarian":
        // Fish is fine; meat is not.
        if containsAny(name, meatKeywords...) {
            return conflict()
        }
    }
    return nil
}

func containsAny(s string, subs ...string) bool {
    for _, sub := range subs {
        if strings.Contains(s, sub) {
            return true
        }
    }
    return false
}
