package model

import "time"

// Action is what happened to a password recorded in the history.
type Action string

const (
	ActionChecked   Action = "Checked"
	ActionGenerated Action = "Generated"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	return a == ActionChecked || a == ActionGenerated
}

// HistoryEntry is one immutable line of the password history.
type HistoryEntry struct {
	Time     time.Time
	Action   Action
	Password string
	Strength string
}

// HistoryEntryResponse represents a history entry in API responses.
type HistoryEntryResponse struct {
	Time     time.Time `json:"time"`
	Action   Action    `json:"action"`
	Password string    `json:"password"`
	Strength string    `json:"strength"`
}

// HistoryResponse represents the most recent history entries, oldest first.
type HistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}

// ExportRequest represents a history export request. An empty File selects
// the default export name; Timestamp selects a timestamp-suffixed name.
type ExportRequest struct {
	File      string `json:"file"`
	Timestamp bool   `json:"timestamp"`
}

// ExportResponse reports where the history was exported to.
type ExportResponse struct {
	File string `json:"file"`
}
