package services

import (
	"sync"
	"time"
)

// Per-month external API usage. Matrix counts individual origin-destination
// cells (one n-address fetch costs n*n), planner counts generation requests.
type MonthUsage struct {
	Planner int `json:"planner"`
	Matrix  int `json:"matrix"`
}

// UsageReport is a point-in-time snapshot of the usage counters.
type UsageReport struct {
	Monthly      map[string]MonthUsage `json:"monthly"`
	TotalPlanner int                   `json:"total_planner"`
	TotalMatrix  int                   `json:"total_matrix"`
}

// SessionState holds the mutable cross-request state: monthly usage counters
// and the most recent successful plan, kept for CSV export. Handlers run
// concurrently, so all access goes through the mutex.
type SessionState struct {
	mu      sync.Mutex
	monthly map[string]MonthUsage
	last    *PlanResult
	now     func() time.Time
}

func NewSessionState() *SessionState {
	return &SessionState{
		monthly: make(map[string]MonthUsage),
		now:     time.Now,
	}
}

func (s *SessionState) monthKey() string {
	return s.now().Format("2006-01")
}

// RecordMatrixCells adds n matrix cells to the current month.
func (s *SessionState) RecordMatrixCells(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.monthKey()
	u := s.monthly[key]
	u.Matrix += n
	s.monthly[key] = u
}

// RecordPlannerCall adds one generation request to the current month.
func (s *SessionState) RecordPlannerCall() {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.monthKey()
	u := s.monthly[key]
	u.Planner++
	s.monthly[key] = u
}

// Usage returns a copy of the counters plus running totals.
func (s *SessionState) Usage() UsageReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := UsageReport{Monthly: make(map[string]MonthUsage, len(s.monthly))}
	for month, u := range s.monthly {
		report.Monthly[month] = u
		report.TotalPlanner += u.Planner
		report.TotalMatrix += u.Matrix
	}
	return report
}

// SetLastOutcome stores the most recent successful plan.
func (s *SessionState) SetLastOutcome(result *PlanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = result
}

// LastOutcome returns the stored plan, or ok=false when no run has
// succeeded yet.
func (s *SessionState) LastOutcome() (*PlanResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, false
	}
	return s.last, true
}
