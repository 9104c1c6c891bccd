package model

// NutritionRecord is the single record selected from a nutrition
// search. At most one is selected per lookup.
type NutritionRecord struct {
	Name        string `json:"name"`        // record description, falls back to the query label
	Ingredients string `json:"ingredients"` // free-text ingredient list, "Not specified" when absent
	Energy      string `json:"energy"`      // "<value> <unit>" or "NA"
}
