package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"dispatch-planner-service/internal/domain"
)

// ReconcileKind classifies the outcome of parsing a planner response.
type ReconcileKind int

const (
	// Parsed and normalized successfully.
	ReconcileOK ReconcileKind = iota
	// No JSON array where one was expected (missing separator, body not
	// starting with '[', non-list payload).
	ReconcileMalformedShape
	// The extracted payload was not valid JSON.
	ReconcileInvalidJSON
)

// Result of reconciling a raw planner response. Non-OK results keep the raw
// response: the planner is non-deterministic, so the verbatim text is the
// only useful diagnostic.
type ReconcileResult struct {
	Kind    ReconcileKind
	Events  []domain.PlanEvent
	Summary string
	Raw     string
	Cause   error
}

func (r ReconcileResult) OK() bool { return r.Kind == ReconcileOK }

// Diagnostic renders a human-readable failure message embedding the raw
// response. Empty for OK results.
func (r ReconcileResult) Diagnostic() string {
	switch r.Kind {
	case ReconcileMalformedShape:
		return fmt.Sprintf("AI応答のJSON解析エラー: JSONデータが見つかりません。\n\n%s", r.Raw)
	case ReconcileInvalidJSON:
		return fmt.Sprintf("AI応答のJSON解析に失敗しました。AIの出力形式が不正な可能性があります。\n\n---受信データ---\n%s", r.Raw)
	default:
		return ""
	}
}

var fencedJSON = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n\\s*```")

// ReconcileResponse parses a planner response into normalized events plus the
// narrative summary.
//
// The response contract is: summary text, a line containing only "---", then
// a JSON array (optionally inside a ```json fence). Movement events carry a
// single timestamp; their proposed time is rewritten into a
// "start - end" range using the next arrival-like event. The planner's event
// order is trusted and preserved.
func ReconcileResponse(raw string, locations []domain.Location) ReconcileResult {
	summary, body := splitOnSeparatorLine(raw)

	payload := body
	if m := fencedJSON.FindStringSubmatch(body); m != nil {
		payload = m[1]
	}
	payload = strings.TrimSpace(payload)

	if !strings.HasPrefix(payload, "[") {
		return ReconcileResult{Kind: ReconcileMalformedShape, Raw: raw, Summary: summary}
	}

	var data any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return ReconcileResult{Kind: ReconcileInvalidJSON, Raw: raw, Summary: summary, Cause: err}
	}

	// Defensive unwrap: some responses arrive as [[...]] or deeper.
	for {
		list, ok := data.([]any)
		if !ok || len(list) != 1 {
			break
		}
		inner, ok := list[0].([]any)
		if !ok {
			break
		}
		data = inner
	}

	items, ok := data.([]any)
	if !ok {
		return ReconcileResult{Kind: ReconcileMalformedShape, Raw: raw, Summary: summary}
	}

	addressByCode := domain.AddressByCode(locations)

	events := make([]domain.PlanEvent, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		statusLabel := strings.TrimSpace(stringField(obj, "status"))
		status := domain.ParseEventStatus(statusLabel)
		proposed := strings.TrimSpace(stringField(obj, "proposed_time"))

		// Movement events carry only a departure timestamp; pair it with
		// the next arrival-like event to form a time range.
		if status.IsMovement() && proposed != "" {
			if end := nextArrivalTime(items[i+1:]); end != "" {
				proposed = proposed + " - " + end
			}
		}

		code := strings.TrimSpace(stringField(obj, "name_code"))

		ev := domain.PlanEvent{
			Vehicle:        strings.TrimSpace(stringField(obj, "d")),
			ProposedTime:   proposed,
			DesiredTime:    strings.TrimSpace(stringField(obj, "desired_time")),
			TimeDifference: strings.TrimSpace(stringField(obj, "time_difference")),
			Status:         status,
			StatusLabel:    statusLabel,
			LocationID:     strings.TrimSpace(stringField(obj, "location_id")),
			LocationCode:   code,
			LocationName:   strings.TrimSpace(stringField(obj, "location_name")),
			Address:        addressByCode[code],
			Remarks:        strings.TrimSpace(stringField(obj, "remarks")),
		}

		// Lines without a vehicle or status carry no itinerary meaning.
		if ev.Vehicle == "" || ev.StatusLabel == "" {
			continue
		}

		events = append(events, ev)
	}

	return ReconcileResult{Kind: ReconcileOK, Events: events, Summary: summary, Raw: raw}
}

// splitOnSeparatorLine splits on the first line consisting solely of "---".
// Without one, everything is summary and the body is empty.
func splitOnSeparatorLine(raw string) (summary, body string) {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.TrimSpace(strings.Join(lines[:i], "\n")),
				strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}
	return strings.TrimSpace(raw), ""
}

func nextArrivalTime(rest []any) string {
	for _, item := range rest {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		status := domain.ParseEventStatus(strings.TrimSpace(stringField(obj, "status")))
		if status.IsArrivalLike() {
			return strings.TrimSpace(stringField(obj, "proposed_time"))
		}
	}
	return ""
}

// stringField renders an arbitrary JSON value as a string; the planner
// occasionally emits numbers where strings were requested.
func stringField(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
