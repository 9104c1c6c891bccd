package taxonomy

import (
	"fmt"
	"strings"
)

// Vocabulary is a fixed set of acceptable tag names defining a domain
// category. Vocabularies are process-wide constants, never derived
// from external calls.
type Vocabulary map[string]struct{}

// NewVocabulary builds a vocabulary from tag names (lowercased)
func NewVocabulary(names ...string) Vocabulary {
	v := make(Vocabulary, len(names))
	for _, name := range names {
		v[strings.ToLower(name)] = struct{}{}
	}
	return v
}

// Contains reports whether name is in the vocabulary
func (v Vocabulary) Contains(name string) bool {
	_, ok := v[name]
	return ok
}

// PersonVocabulary accepts profile pictures that clearly contain a person
var PersonVocabulary = NewVocabulary("person", "man", "woman", "people", "face", "boy", "girl")

// FoodVocabulary accepts images of food for nutrition analysis
var FoodVocabulary = NewVocabulary("food", "dish", "meal", "fruit", "vegetable", "dessert", "drink", "meat", "pasta", "bread", "pizza", "salad")

// Policy selects the tag acceptance rule. Two divergent behaviors
// exist upstream and both are preserved as explicit named policies
// rather than unified.
type Policy int

const (
	// StrictTop1 accepts only if the single most confident tag is in-vocabulary
	StrictTop1 Policy = iota

	// LenientTopN accepts if any ranked tag is in-vocabulary, picking
	// the highest-ranked in-vocabulary tag as primary
	LenientTopN
)

func (p Policy) String() string {
	switch p {
	case StrictTop1:
		return "strict"
	case LenientTopN:
		return "lenient"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name from configuration
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "strict_top1":
		return StrictTop1, nil
	case "lenient", "lenient_topn", "":
		return LenientTopN, nil
	default:
		return LenientTopN, fmt.Errorf("unknown taxonomy policy: %q (supported: strict, lenient)", s)
	}
}
