package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStateUsageCounters(t *testing.T) {
	s := NewSessionState()
	current := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	s.RecordMatrixCells(9)
	s.RecordPlannerCall()
	s.RecordPlannerCall()

	// Counters roll into a new bucket when the month changes.
	current = current.AddDate(0, 1, 0)
	s.RecordMatrixCells(4)

	report := s.Usage()
	assert.Equal(t, MonthUsage{Planner: 2, Matrix: 9}, report.Monthly["2026-08"])
	assert.Equal(t, MonthUsage{Planner: 0, Matrix: 4}, report.Monthly["2026-09"])
	assert.Equal(t, 2, report.TotalPlanner)
	assert.Equal(t, 13, report.TotalMatrix)
}

func TestSessionStateLastOutcome(t *testing.T) {
	s := NewSessionState()

	_, ok := s.LastOutcome()
	assert.False(t, ok)

	s.SetLastOutcome(&PlanResult{Summary: "計画サマリー"})

	got, ok := s.LastOutcome()
	require.True(t, ok)
	assert.Equal(t, "計画サマリー", got.Summary)
}
