package adapter

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"shipping-gateway/internal/features/shipping/domain"
)

const (
	carrierDateLayout = "2006-01-02 15:04:05"
	timelineDate      = "02 Jan 2006"
	timelineTime      = "03:04 PM"
)

// Checked in this order; the first vocabulary that matches wins.
// Negated wording contains completed keywords, so it is checked first.
var (
	failedKeywords = []string{
		"undelivered", "not delivered", "delivery failed", "failed delivery",
		"not picked", "pickup failed", "not shipped", "not manifested",
	}
	completedKeywords = []string{"delivered", "picked up", "shipped", "manifested"}
	activeKeywords    = []string{
		"in transit", "out for delivery", "reached", "arrived",
		"dispatched", "pickup scheduled", "pickup generated",
	}
)

// trackingActivity is one entry of shipment_track_activities.
type trackingActivity struct {
	Date        string `json:"date"`
	Status      string `json:"status"`
	Activity    string `json:"activity"`
	Location    string `json:"location"`
	StatusLabel string `json:"sr-status-label"`
}

// trackingData is the carrier's tracking_data object.
type trackingData struct {
	Activities []trackingActivity `json:"shipment_track_activities"`
}

// ConvertTrackingToTimeline normalizes a carrier tracking payload. It never
// fails: unknown or partial shapes yield an empty timeline.
func ConvertTrackingToTimeline(raw json.RawMessage) []domain.TimelineStep {
	steps := []domain.TimelineStep{}

	data, ok := findTrackingData(raw)
	if !ok {
		return steps
	}

	for i, act := range data.Activities {
		date, clock := splitActivityDate(act.Date)
		description := strings.TrimSpace(act.Activity)
		if description == "" {
			description = firstNonEmpty(act.StatusLabel, act.Status)
		}
		steps = append(steps, domain.TimelineStep{
			Step:        i + 1,
			Status:      ClassifyStatus(act.StatusLabel + " " + act.Status + " " + act.Activity),
			Date:        date,
			Time:        clock,
			Description: description,
			Location:    strings.TrimSpace(act.Location),
			RawStatus:   firstNonEmpty(act.StatusLabel, act.Status),
		})
	}
	return steps
}

// ClassifyStatus infers a step status from free carrier wording.
func ClassifyStatus(text string) domain.StepStatus {
	lower := strings.ToLower(text)
	for _, kw := range failedKeywords {
		if strings.Contains(lower, kw) {
			return domain.StepPending
		}
	}
	for _, kw := range completedKeywords {
		if strings.Contains(lower, kw) {
			return domain.StepCompleted
		}
	}
	for _, kw := range activeKeywords {
		if strings.Contains(lower, kw) {
			return domain.StepActive
		}
	}
	return domain.StepPending
}

// findTrackingData accepts {tracking_data}, [{tracking_data}] and
// [{"<order id>": {tracking_data}}], taking the first shipment.
func findTrackingData(raw json.RawMessage) (trackingData, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		return trackingDataFrom(obj)
	}

	var list []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return trackingData{}, false
	}
	first := list[0]
	if _, ok := first["tracking_data"]; ok {
		return trackingDataFrom(first)
	}

	keys := make([]string, 0, len(first))
	for k := range first {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(first[k], &nested); err != nil {
			continue
		}
		if data, ok := trackingDataFrom(nested); ok {
			return data, true
		}
	}
	return trackingData{}, false
}

func trackingDataFrom(obj map[string]json.RawMessage) (trackingData, bool) {
	rawData, ok := obj["tracking_data"]
	if !ok {
		return trackingData{}, false
	}
	var data trackingData
	if err := json.Unmarshal(rawData, &data); err != nil {
		return trackingData{}, false
	}
	return data, true
}

func splitActivityDate(value string) (date, clock string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ""
	}
	if t, err := time.Parse(carrierDateLayout, value); err == nil {
		return t.Format(timelineDate), t.Format(timelineTime)
	}
	date, clock, _ = strings.Cut(value, " ")
	return date, strings.TrimSpace(clock)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
