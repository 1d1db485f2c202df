package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordPolicyProhibitedItems(t *testing.T) {
	policy := KeywordPolicy{}
	profile := PolicyProfile{DietType: "non-vegetarian"}

	f := policy.Screen("Protein Pills", profile, false)
	require.NotNil(t, f)
	assert.Equal(t, "prohibited item suggested", f.Reason)

	// Catalog-matched names skip the prohibited scan.
	assert.Nil(t, policy.Screen("Protein Pills", profile, true))

	assert.Nil(t, policy.Screen("Protein Shake", profile, false))
}

func TestKeywordPolicyDietConflicts(t *testing.T) {
	policy := KeywordPolicy{}

	cases := []struct {
		diet     string
		meal     string
		conflict bool
	}{
		{"vegan", "Grilled Chicken Salad", true},
		{"vegan", "Cheese Omelette", true},
		{"vegan", "Tofu Stir Fry", false},
		{"vegetarian", "Beef Burger", true},
		{"vegetarian", "Shrimp Fried Rice", true},
		{"vegetarian", "Greek Yogurt", false},
		{"pescatarian", "Salmon Fillet", false},
		{"pescatarian", "Bacon Sandwich", true},
		{"non-vegetarian", "Beef Burger", false},
		{"", "Beef Burger", false},
	}
	for _, tc := range cases {
		f := policy.Screen(tc.meal, PolicyProfile{DietType: tc.diet}, false)
		if tc.conflict {
			require.NotNil(t, f, "%s / %s", tc.diet, tc.meal)
			assert.Equal(t, "conflicts with user diet", f.Reason)
		} else {
			assert.Nil(t, f, "%s / %s", tc.diet, tc.meal)
		}
	}
}

func TestKeywordPolicyAllergies(t *testing.T) {
	policy := KeywordPolicy{}
	profile := PolicyProfile{
		DietType:  "non-vegetarian",
		Allergies: []string{"Peanut", "shellfish"},
	}

	f := policy.Screen("peanut butter sandwich", profile, true)
	require.NotNil(t, f)
	assert.Equal(t, "conflicts with user allergies", f.Reason)

	assert.Nil(t, policy.Screen("banana", profile, true))
}
