package domain

import "encoding/json"

// StepStatus is the inferred state of a tracking activity.
type StepStatus string

const (
	// StepCompleted marks an activity that has happened and closed a stage.
	StepCompleted StepStatus = "completed"
	// StepActive marks the stage the shipment is currently in.
	StepActive StepStatus = "active"
	// StepPending marks anything we could not classify.
	StepPending StepStatus = "pending"
)

// TimelineStep is one normalized carrier activity.
type TimelineStep struct {
	// Step is the 1-based position in the carrier's activity list.
	Step int `json:"step"`
	// Status is derived from the carrier's wording.
	Status StepStatus `json:"status"`
	// Date is the activity date, e.g. "02 Jan 2026".
	Date string `json:"date"`
	// Time is the activity time, e.g. "03:04 PM".
	Time string `json:"time"`
	// Description is the carrier's activity text.
	Description string `json:"description"`
	// Location is where the activity was scanned, when reported.
	Location string `json:"location,omitempty"`
	// RawStatus is the carrier's own status label.
	RawStatus string `json:"raw_status,omitempty"`
}

// TrackingView pairs the carrier payload with its normalized timeline.
type TrackingView struct {
	Raw      json.RawMessage `json:"raw"`
	Timeline []TimelineStep  `json:"timeline"`
}
