package model

// RankedTag is a single label returned by the vision tagging service.
// Confidence is a percentage in [0,100] as reported by the service;
// it is trusted as given and not re-validated.
type RankedTag struct {
	Name       string  `json:"name"`       // lowercase label (e.g. "pizza")
	Confidence float64 `json:"confidence"` // 0-100, most confident first
}

// ValidationOutcome is the result of checking ranked tags against a
// taxonomy vocabulary. PrimaryTag is set iff Accepted is true.
type ValidationOutcome struct {
	Accepted        bool       `json:"accepted"`
	PrimaryTag      *RankedTag `json:"primary_tag,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}
