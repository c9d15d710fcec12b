package execution

import (
	"context"
	"fmt"

	"github.com/hostprep/hostprep/internal/domain/step"
)

// Planner generates a Plan from a step Graph by checking each step's
// current status against live host facts.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan checks every step and returns entries in execution order.
// A failing check is not fatal: the step is planned as unknown and will be
// re-checked (and applied if still undecided) at execution time.
func (p *Planner) Plan(ctx context.Context, graph *step.Graph) (*Plan, error) {
	plan := NewPlan()

	steps, err := graph.Sorted()
	if err != nil {
		return nil, fmt.Errorf("sort steps: %w", err)
	}

	runCtx := step.NewRunContext(ctx)

	for _, s := range steps {
		plan.Add(p.planStep(s, runCtx))
	}

	return plan, nil
}

// planStep checks a single step and generates a PlanEntry.
func (p *Planner) planStep(s step.Step, ctx step.RunContext) PlanEntry {
	status, err := s.Check(ctx)
	if err != nil {
		// Probe errors mean "state undetermined", treated as not present.
		status = step.StatusUnknown
	}

	var diff step.Diff
	if status.NeedsAction() {
		if d, err := s.Plan(ctx); err == nil {
			diff = d
		}
	}

	return NewPlanEntry(s, status, diff)
}
