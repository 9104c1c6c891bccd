package taxonomy

import (
	"fmt"

	"github.com/ppiankov/mediguard/internal/model"
)

// Validate decides whether a ranked tag sequence belongs to the domain
// category described by vocab. Pure decision logic: no side effects,
// no external calls.
//
// The primary tag is the highest-ranked tag that is also
// in-vocabulary, which under LenientTopN is not necessarily the most
// confident tag overall.
func Validate(tags []model.RankedTag, vocab Vocabulary, policy Policy) model.ValidationOutcome {
	if len(tags) == 0 {
		return model.ValidationOutcome{
			Accepted:        false,
			RejectionReason: "no tags detected",
		}
	}

	switch policy {
	case StrictTop1:
		top := tags[0]
		if vocab.Contains(top.Name) {
			return accepted(top)
		}
		return rejected(tags)

	default: // LenientTopN
		for _, tag := range tags {
			if vocab.Contains(tag.Name) {
				return accepted(tag)
			}
		}
		return rejected(tags)
	}
}

func accepted(tag model.RankedTag) model.ValidationOutcome {
	t := tag
	return model.ValidationOutcome{
		Accepted:   true,
		PrimaryTag: &t,
	}
}

// rejected reports the top-ranked tag for user diagnostics
func rejected(tags []model.RankedTag) model.ValidationOutcome {
	top := tags[0]
	return model.ValidationOutcome{
		Accepted:        false,
		RejectionReason: fmt.Sprintf("no matching tag found, top detected: %q (%.1f%%)", top.Name, top.Confidence),
	}
}
