package services

import (
	"testing"

	"dispatch-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAggregateItinerarySpans(t *testing.T) {
	events := []domain.PlanEvent{
		{ProposedTime: "2025/06/15 08:30", DesiredTime: "2025/06/15 08:30"},
		{ProposedTime: "2025/06/15 09:00 - 2025/06/15 11:00", DesiredTime: "2025/06/15 10:00"},
		{ProposedTime: "2025/06/15 11:45", DesiredTime: "2025/06/15 10:30"},
	}

	totals := AggregateItinerary(events)

	// Ranges contribute their start: proposed span is 08:30..11:45.
	assert.Equal(t, "3時間15分", totals.Proposed)
	assert.Equal(t, "2時間0分", totals.Desired)
	assert.Equal(t, "+1時間15分", totals.Difference)
}

func TestAggregateItineraryNegativeDifference(t *testing.T) {
	events := []domain.PlanEvent{
		{ProposedTime: "2025/06/15 09:00", DesiredTime: "2025/06/15 08:00"},
		{ProposedTime: "2025/06/15 10:00", DesiredTime: "2025/06/15 12:00"},
	}

	totals := AggregateItinerary(events)

	assert.Equal(t, "1時間0分", totals.Proposed)
	assert.Equal(t, "4時間0分", totals.Desired)
	assert.Equal(t, "-3時間0分", totals.Difference)
}

func TestAggregateItineraryDegradesToPlaceholder(t *testing.T) {
	events := []domain.PlanEvent{
		{ProposedTime: "そのうち", DesiredTime: ""},
		{ProposedTime: "", DesiredTime: "未定"},
	}

	totals := AggregateItinerary(events)

	assert.Equal(t, zeroDuration, totals.Proposed)
	assert.Equal(t, zeroDuration, totals.Desired)
	assert.Equal(t, zeroDuration, totals.Difference)
}

func TestAggregateItineraryEmptyInput(t *testing.T) {
	totals := AggregateItinerary(nil)
	assert.Equal(t, zeroDuration, totals.Proposed)
	assert.Equal(t, zeroDuration, totals.Desired)
	assert.Equal(t, zeroDuration, totals.Difference)
}

func TestAggregateItineraryUnparsableRowsAreSkipped(t *testing.T) {
	events := []domain.PlanEvent{
		{ProposedTime: "2025/06/15 09:00"},
		{ProposedTime: "翌朝"},
		{ProposedTime: "2025/06/15 10:30"},
	}

	totals := AggregateItinerary(events)
	assert.Equal(t, "1時間30分", totals.Proposed)
}
