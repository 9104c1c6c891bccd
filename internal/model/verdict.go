package model

// Classification is the bounded verdict extracted from free-form
// generated text. UNKNOWN is a legitimate terminal value: the
// generative service may omit or mis-place the concluding keyword.
type Classification string

const (
	ClassificationSafe    Classification = "SAFE"
	ClassificationCaution Classification = "CAUTION"
	ClassificationAvoid   Classification = "AVOID"
	ClassificationUnknown Classification = "UNKNOWN"
)

// SafetyVerdict is the synthesized suitability verdict for a food
// and medical condition pair.
type SafetyVerdict struct {
	// Narrative is the human-readable explanation with any private
	// reasoning block stripped and the concluding keyword wrapped in
	// its status marker.
	Narrative string `json:"narrative"`

	// Classification defaults to UNKNOWN when no trailing keyword is
	// found in the narrative.
	Classification Classification `json:"classification"`
}
