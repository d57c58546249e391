package domain

// EventStatus is the enumerated kind of one itinerary line. The planner emits
// these as fixed Japanese labels; anything outside the contract maps to
// StatusUnrecognized while the verbatim text survives in PlanEvent.StatusLabel.
type EventStatus int

const (
	StatusUnrecognized EventStatus = iota
	StatusDepart
	StatusArrive
	StatusTransit
	StatusStay
	StatusBreak
	StatusFerryBoard
	StatusFerryTransit
	StatusFerryDisembark
	StatusFerryRest
)

var statusLabels = map[EventStatus]string{
	StatusDepart:         "出発",
	StatusArrive:         "到着",
	StatusTransit:        "移動",
	StatusStay:           "滞在",
	StatusBreak:          "休憩",
	StatusFerryBoard:     "フェリー乗船",
	StatusFerryTransit:   "フェリー移動",
	StatusFerryDisembark: "フェリー下船",
	StatusFerryRest:      "フェリー乗船中休息",
}

var statusByLabel = func() map[string]EventStatus {
	m := make(map[string]EventStatus, len(statusLabels))
	for s, label := range statusLabels {
		m[label] = s
	}
	return m
}()

// ParseEventStatus maps a planner-emitted label to its status.
// Unknown labels yield StatusUnrecognized, never an error.
func ParseEventStatus(label string) EventStatus {
	if s, ok := statusByLabel[label]; ok {
		return s
	}
	return StatusUnrecognized
}

func (s EventStatus) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "不明"
}

// IsMovement reports whether the status describes a transit leg whose
// proposed time should be rewritten into a start-end range.
func (s EventStatus) IsMovement() bool {
	return s == StatusTransit || s == StatusFerryTransit
}

// IsArrivalLike reports whether the status terminates a preceding transit leg.
func (s EventStatus) IsArrivalLike() bool {
	return s == StatusArrive || s == StatusFerryBoard || s == StatusFerryDisembark
}

// One normalized line of the reconciled itinerary: one status change for one
// vehicle at one location and time. All fields are trimmed strings; ProposedTime
// may be a "start - end" range after movement reconstruction.
type PlanEvent struct {
	Vehicle        string
	ProposedTime   string
	DesiredTime    string
	TimeDifference string
	Status         EventStatus
	StatusLabel    string
	LocationID     string
	LocationCode   string
	LocationName   string
	Address        string
	Remarks        string
}

// GroupByVehicle splits events into per-vehicle groups, preserving both the
// planner's event order within a group and the order in which vehicles first
// appear.
func GroupByVehicle(events []PlanEvent) (order []string, groups map[string][]PlanEvent) {
	groups = make(map[string][]PlanEvent)
	for _, ev := range events {
		if _, ok := groups[ev.Vehicle]; !ok {
			order = append(order, ev.Vehicle)
		}
		groups[ev.Vehicle] = append(groups[ev.Vehicle], ev)
	}
	return order, groups
}
