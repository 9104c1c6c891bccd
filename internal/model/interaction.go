package model

// InteractionStatus classifies the outcome of a drug interaction check
type InteractionStatus string

const (
	StatusOK      InteractionStatus = "ok"      // records found, no textual match for the condition
	StatusWarning InteractionStatus = "warning" // condition mentioned somewhere in a label record
	StatusInfo    InteractionStatus = "info"    // no label records found for the drug
	StatusError   InteractionStatus = "error"   // transport failure or invalid input
)

// InteractionResult is the outcome of one (drug, condition) check.
// Ephemeral: produced per request and never stored.
type InteractionResult struct {
	Status  InteractionStatus `json:"status"`
	Message string            `json:"message"`
}
