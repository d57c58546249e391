package domain

import "time"

// A desired-presence interval at one location, derived from Locations that
// carry both a parseable arrival and departure. Used only during conflict
// analysis.
type TimeSlot struct {
	LocationName string
	LocationCode string
	Arrival      time.Time
	Departure    time.Time
}

// Two TimeSlots whose intervals overlap, implying that one vehicle cannot
// serve both locations.
type ConflictPair struct {
	A TimeSlot
	B TimeSlot
}

// Overlaps reports whether two slots conflict. The test is a strict half-open
// interval overlap: touching endpoints (A departs exactly when B arrives) do
// not conflict. Symmetric by construction.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Arrival.Before(other.Departure) && other.Arrival.Before(s.Departure)
}
