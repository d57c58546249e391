package services

import (
	"fmt"
	"strings"
	"time"

	"dispatch-planner-service/internal/domain"
)

// Rendered when a span cannot be computed (no parseable timestamps).
const zeroDuration = "0時間0分"

// Duration totals for one vehicle's itinerary. Proposed and Desired are
// magnitudes; Difference carries an explicit sign.
type ItineraryTotals struct {
	Proposed   string
	Desired    string
	Difference string
}

// AggregateItinerary computes, for one vehicle's events, the span between the
// earliest and latest proposed times, the same for desired times, and their
// signed difference. Range values ("start - end") contribute their start.
// Unparsable timestamps are skipped; a fully unparsable column degrades to
// the zero placeholder, never an error.
func AggregateItinerary(events []domain.PlanEvent) ItineraryTotals {
	var proposed, desired []time.Time
	for _, ev := range events {
		if t, ok := domain.ParsePlanTime(rangeStart(ev.ProposedTime)); ok {
			proposed = append(proposed, t)
		}
		if t, ok := domain.ParsePlanTime(ev.DesiredTime); ok {
			desired = append(desired, t)
		}
	}

	totals := ItineraryTotals{
		Proposed:   zeroDuration,
		Desired:    zeroDuration,
		Difference: zeroDuration,
	}

	var proposedSpan, desiredSpan time.Duration
	if len(proposed) > 0 {
		proposedSpan = span(proposed)
		totals.Proposed = formatDuration(proposedSpan)
	}
	if len(desired) > 0 {
		desiredSpan = span(desired)
		totals.Desired = formatDuration(desiredSpan)
	}

	if len(proposed) > 0 && len(desired) > 0 {
		diff := proposedSpan - desiredSpan
		sign := "+"
		if diff < 0 {
			sign = "-"
			diff = -diff
		}
		totals.Difference = sign + formatDuration(diff)
	}

	return totals
}

// rangeStart returns the start of a "start - end" range, or the value itself.
func rangeStart(s string) string {
	if idx := strings.Index(s, " - "); idx >= 0 {
		return s[:idx]
	}
	return s
}

func span(times []time.Time) time.Duration {
	min, max := times[0], times[0]
	for _, t := range times[1:] {
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	return max.Sub(min)
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d時間%d分", total/3600, (total%3600)/60)
}
