package models

// HistoryEntry keeps the raw text the user typed next to the frozen outcome.
type HistoryEntry struct {
	ID          string  `json:"id"`
	Midterm     string  `json:"midterm"`
	Final       string  `json:"final"`
	Threshold   string  `json:"threshold"`
	Average     float64 `json:"average"`
	Status      Status  `json:"status,omitempty"`
	StatusLabel string  `json:"statusLabel"`
	StatusColor string  `json:"statusColor"`
	Timestamp   string  `json:"timestamp"`
}
