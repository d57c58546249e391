package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dispatch-planner-service/internal/domain"
	"dispatch-planner-service/internal/ports"
)

// ValidationError marks input problems the caller can fix. Messages are
// user-facing Japanese, surfaced unchanged.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PlanRequest is one planning run: the stops to visit, the dispatcher's
// explicit vehicle picks (fleet IDs, may be empty), and the optimization
// options.
type PlanRequest struct {
	Locations          []domain.Location
	SelectedVehicleIDs []string
	Options            PromptOptions
}

// VehicleItinerary groups one vehicle's reconciled events with its duration
// totals and a route map link.
type VehicleItinerary struct {
	Vehicle string
	Events  []domain.PlanEvent
	Totals  ItineraryTotals
	MapLink string
}

// PlanResult is the outcome of a planning run or preview. A failed
// reconciliation is not an error: Events stays empty and Warnings carries the
// diagnostic, with the raw planner text preserved inside it.
type PlanResult struct {
	Summary     string
	Prompt      string
	MinRequired int
	Conflicts   []domain.ConflictPair
	Vehicles    []domain.PlannerVehicle
	Events      []domain.PlanEvent
	Itineraries []VehicleItinerary
	Warnings    []string
}

// Planner runs the planning pipeline: validate, fetch travel data, compose
// the prompt, call the generator, reconcile, aggregate.
type Planner struct {
	fleet     ports.VehicleRepository
	matrix    ports.TravelMatrixProvider
	generator ports.PlanGenerator
	session   *SessionState

	now func() time.Time
}

func NewPlanner(
	fleet ports.VehicleRepository,
	matrix ports.TravelMatrixProvider,
	generator ports.PlanGenerator,
	session *SessionState,
) *Planner {
	return &Planner{
		fleet:     fleet,
		matrix:    matrix,
		generator: generator,
		session:   session,
		now:       time.Now,
	}
}

// Preview performs conflict analysis and prompt composition without touching
// any external service. The travel section renders its placeholder.
func (p *Planner) Preview(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	minRequired, conflicts := AnalyzeVehicleRequirements(req.Locations)

	fleet, err := p.fleet.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("preview plan: %w", err)
	}
	vehicles := SelectVehiclesForPlanner(pickByID(fleet, req.SelectedVehicleIDs), fleet, minRequired)

	prompt := ComposePrompt(PromptInput{
		Vehicles:    vehicles,
		Locations:   req.Locations,
		Options:     req.Options,
		MinRequired: minRequired,
		Conflicts:   conflicts,
	})

	return &PlanResult{
		Prompt:      prompt,
		MinRequired: minRequired,
		Conflicts:   conflicts,
		Vehicles:    vehicles,
	}, nil
}

// Plan runs the full pipeline. Provider failures return an error;
// reconciliation failures return a result whose Warnings carry the
// diagnostic, because the raw planner text is what the dispatcher needs
// to see.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	addresses := make([]string, len(req.Locations))
	for i, loc := range req.Locations {
		addresses[i] = loc.Address
	}

	matrix, err := p.matrix.GetMatrix(ctx, ports.MatrixRequest{
		Addresses:     addresses,
		DepartureTime: p.departureTime(req.Locations),
		AvoidTolls:    !req.Options.UseTolls,
	})
	p.session.RecordMatrixCells(len(addresses) * len(addresses))
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	minRequired, conflicts := AnalyzeVehicleRequirements(req.Locations)

	fleet, err := p.fleet.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}
	vehicles := SelectVehiclesForPlanner(pickByID(fleet, req.SelectedVehicleIDs), fleet, minRequired)

	prompt := ComposePrompt(PromptInput{
		Vehicles:    vehicles,
		Locations:   req.Locations,
		Matrix:      matrix,
		Options:     req.Options,
		MinRequired: minRequired,
		Conflicts:   conflicts,
	})

	raw, err := p.generator.GeneratePlan(ctx, prompt)
	p.session.RecordPlannerCall()
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	result := &PlanResult{
		Prompt:      prompt,
		MinRequired: minRequired,
		Conflicts:   conflicts,
		Vehicles:    vehicles,
	}

	reconciled := ReconcileResponse(raw, req.Locations)
	result.Summary = reconciled.Summary
	if !reconciled.OK() {
		result.Warnings = append(result.Warnings, reconciled.Diagnostic())
		return result, nil
	}

	result.Events = reconciled.Events
	order, groups := domain.GroupByVehicle(reconciled.Events)
	for _, vehicle := range order {
		events := groups[vehicle]
		result.Itineraries = append(result.Itineraries, VehicleItinerary{
			Vehicle: vehicle,
			Events:  events,
			Totals:  AggregateItinerary(events),
			MapLink: RouteMapLink(events),
		})
	}

	p.session.SetLastOutcome(result)
	return result, nil
}

// departureTime is the start location's desired departure; without a
// parseable one, one hour from now.
func (p *Planner) departureTime(locations []domain.Location) time.Time {
	for _, loc := range locations {
		if !loc.IsStart {
			continue
		}
		if t, ok := domain.ParsePlanTime(loc.DesiredDeparture); ok {
			return t
		}
		break
	}
	return p.now().Add(time.Hour)
}

// validateRequest runs before any external call so bad input never spends a
// provider quota.
func validateRequest(req PlanRequest) error {
	if err := validateLocations(req.Locations); err != nil {
		return err
	}
	return validateOptions(req.Options)
}

// An empty mode falls back to the fastest-time objective; anything else
// outside the enumerated modes is rejected. Custom mode without a directive
// would render a blank request section, so it is refused up front.
func validateOptions(o PromptOptions) error {
	switch o.Mode {
	case "", ModeFastestTime, ModeShortestDistance, ModeStrictSchedule:
	case ModeCustom:
		if strings.TrimSpace(o.CustomDirective) == "" {
			return &ValidationError{Message: "カスタム指示を入力してください"}
		}
	default:
		return &ValidationError{Message: fmt.Sprintf("不明な最適化モードです: %q", string(o.Mode))}
	}
	return nil
}

func validateLocations(locations []domain.Location) error {
	if len(locations) < 2 {
		return &ValidationError{Message: "最低2つの地点が必要です"}
	}

	hasStart, hasEnd := false, false
	for _, loc := range locations {
		if loc.Address == "" {
			return &ValidationError{Message: "全ての地点に住所が設定されている必要があります"}
		}
		hasStart = hasStart || loc.IsStart
		hasEnd = hasEnd || loc.IsEnd
	}
	if !hasStart {
		return &ValidationError{Message: "始点フラグ(1)が設定されていません"}
	}
	if !hasEnd {
		return &ValidationError{Message: "終着フラグ(2)が設定されていません"}
	}
	return nil
}

// pickByID resolves the dispatcher's vehicle picks against the fleet,
// preserving pick order. Unknown IDs are dropped.
func pickByID(fleet []domain.Vehicle, ids []string) []domain.Vehicle {
	byID := make(map[string]domain.Vehicle, len(fleet))
	for _, v := range fleet {
		byID[v.ID] = v
	}
	var out []domain.Vehicle
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out
}
