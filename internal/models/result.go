package models

type Status string

const (
	StatusPass        Status = "pass"
	StatusConditional Status = "conditional"
	StatusFail        Status = "fail"
)

// EvaluationResult is produced once per successful evaluation and never mutated.
type EvaluationResult struct {
	Average     float64 `json:"average"`
	Status      Status  `json:"status"`
	StatusLabel string  `json:"statusLabel"`
	StatusColor string  `json:"statusColor"`

	// BelowThreshold is set when the final score alone decided the failure.
	BelowThreshold bool `json:"belowThreshold"`
}

// DisplayStatus is what a saved course shows. Average and Status are nil for
// courses that have no usable scores yet.
type DisplayStatus struct {
	Average     *float64 `json:"average"`
	Status      *Status  `json:"status"`
	StatusLabel string   `json:"statusLabel"`
	StatusColor string   `json:"statusColor"`
}

func (d DisplayStatus) Graded() bool {
	return d.Status != nil
}
