package ports

import "context"

// Contract for the external text-generation planner. The prompt encodes every
// constraint; the response is free text parsed by the response reconciler.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, prompt string) (string, error)
}
