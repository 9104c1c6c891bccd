package pipeline

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ppiankov/mediguard/internal/model"
)

// ProfileResult is the renderable outcome of a profile image check
type ProfileResult struct {
	Valid      bool    `json:"valid"`
	Tag        string  `json:"tag,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// FoodResult is the renderable outcome of a food image check
type FoodResult struct {
	Valid            bool                 `json:"valid"`
	FoodName         string               `json:"food_name,omitempty"`
	Confidence       float64              `json:"confidence,omitempty"`
	NutritionSnippet string               `json:"nutrition_snippet,omitempty"` // selected record description
	Ingredients      string               `json:"ingredients,omitempty"`
	Energy           string               `json:"energy,omitempty"`
	Analysis         string               `json:"analysis,omitempty"` // verdict narrative
	Classification   model.Classification `json:"classification,omitempty"`
	Tags             []model.RankedTag    `json:"tags,omitempty"` // all ranked tags, for diagnostics
	Error            string               `json:"error,omitempty"`
}

// tagNames renders detected tag names for rejection diagnostics
func tagNames(tags []model.RankedTag) string {
	if len(tags) == 0 {
		return "none"
	}
	names := lo.Map(tags, func(t model.RankedTag, _ int) string { return t.Name })
	return strings.Join(names, ", ")
}
