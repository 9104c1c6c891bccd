package verdict

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/mediguard/internal/model"
)

// Some models emit internal deliberation inside <think>...</think>
// tags; it must never reach the user.
var thinkBlockRE = regexp.MustCompile(`(?is)<think>.*?</think>`)

// trailingRule binds a classification keyword to its trailing-position
// pattern and the visual marker it is wrapped in. The first trailing
// match wins.
type trailingRule struct {
	classification model.Classification
	pattern        *regexp.Regexp
	marker         string
}

// trailingRules is derived from Classifications, so extraction priority
// follows that slice's order.
var trailingRules = buildTrailingRules()

func buildTrailingRules() []trailingRule {
	rules := make([]trailingRule, 0, len(Classifications))
	for _, c := range Classifications {
		keyword := string(c)
		rules = append(rules, trailingRule{
			classification: c,
			pattern:        regexp.MustCompile(`(?i)\b` + keyword + `\b\s*$`),
			marker:         fmt.Sprintf(`<span class="status %s">%s</span>`, strings.ToLower(keyword), keyword),
		})
	}
	return rules
}

// Parse turns raw generated text into a SafetyVerdict:
//
//  1. strip any private-reasoning block (non-greedy, case-insensitive)
//  2. trim whitespace
//  3. wrap the first trailing SAFE/CAUTION/AVOID keyword in its status
//     marker and record it as the classification
//
// When no trailing keyword matches, the classification is UNKNOWN and
// the narrative is left otherwise unmarked. Re-parsing an already
// wrapped narrative yields UNKNOWN: the marker does not end in a bare
// keyword, so nothing is double-wrapped.
func Parse(raw string) model.SafetyVerdict {
	narrative := thinkBlockRE.ReplaceAllString(raw, "")
	narrative = strings.TrimSpace(narrative)

	for _, rule := range trailingRules {
		if rule.pattern.MatchString(narrative) {
			return model.SafetyVerdict{
				Narrative:      rule.pattern.ReplaceAllString(narrative, rule.marker),
				Classification: rule.classification,
			}
		}
	}

	return model.SafetyVerdict{
		Narrative:      narrative,
		Classification: model.ClassificationUnknown,
	}
}
