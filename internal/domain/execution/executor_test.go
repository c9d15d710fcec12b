package execution

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hostprep/hostprep/internal/domain/step"
)

// fakeStep is a scriptable step for executor tests. Check statuses are
// consumed in order so a step can report differently at plan and execution
// time.
type fakeStep struct {
	id       step.ID
	deps     []step.ID
	statuses []step.Status
	checkErr error
	applyErr error
	applyFn  func(step.RunContext) error
	applies  int
	log      *[]string
}

func newFakeStep(id string) *fakeStep {
	return &fakeStep{
		id:       step.MustNewID(id),
		statuses: []step.Status{step.StatusNeedsApply},
	}
}

func (f *fakeStep) ID() step.ID          { return f.id }
func (f *fakeStep) DependsOn() []step.ID { return f.deps }

func (f *fakeStep) Check(step.RunContext) (step.Status, error) {
	status := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return status, f.checkErr
}

func (f *fakeStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "fake", f.id.String(), "", "present"), nil
}

func (f *fakeStep) Apply(ctx step.RunContext) error {
	f.applies++
	if f.log != nil {
		*f.log = append(*f.log, f.id.String())
	}
	if f.applyFn != nil {
		return f.applyFn(ctx)
	}
	return f.applyErr
}

func planOf(steps ...*fakeStep) *Plan {
	plan := NewPlan()
	for _, s := range steps {
		plan.Add(NewPlanEntry(s, step.StatusNeedsApply, step.Diff{}))
	}
	return plan
}

func TestExecutorAppliesInDeclarationOrder(t *testing.T) {
	var log []string
	a := newFakeStep("t:apply:a")
	b := newFakeStep("t:apply:b")
	c := newFakeStep("t:apply:c")
	for _, s := range []*fakeStep{a, b, c} {
		s.log = &log
	}

	results := NewExecutor().Execute(context.Background(), planOf(a, b, c))

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, res := range results {
		if !res.Applied() {
			t.Errorf("result %d: expected applied, got %s", i, res.Status())
		}
	}
	want := []string{"t:apply:a", "t:apply:b", "t:apply:c"}
	if strings.Join(log, ",") != strings.Join(want, ",") {
		t.Errorf("apply order = %v, want %v", log, want)
	}
}

func TestExecutorSkipsSatisfiedStep(t *testing.T) {
	s := newFakeStep("t:noop:a")
	s.statuses = []step.Status{step.StatusSatisfied}

	results := NewExecutor().Execute(context.Background(), planOf(s))

	if len(results) != 1 || !results[0].Skipped() {
		t.Fatalf("expected skipped result, got %+v", results)
	}
	if results[0].Detail() != "already satisfied" {
		t.Errorf("detail = %q", results[0].Detail())
	}
	if s.applies != 0 {
		t.Errorf("apply was called %d times", s.applies)
	}
}

func TestExecutorRechecksAtExecutionTime(t *testing.T) {
	// Planned as needs-apply, but satisfied by the time execution reaches it.
	s := newFakeStep("t:recheck:a")
	s.statuses = []step.Status{step.StatusSatisfied}

	plan := NewPlan()
	plan.Add(NewPlanEntry(s, step.StatusNeedsApply, step.Diff{}))

	results := NewExecutor().Execute(context.Background(), plan)

	if !results[0].Skipped() {
		t.Fatalf("expected skipped, got %s", results[0].Status())
	}
	if s.applies != 0 {
		t.Errorf("apply was called despite satisfied re-check")
	}
}

func TestExecutorHaltsOnFirstFailure(t *testing.T) {
	a := newFakeStep("t:halt:a")
	b := newFakeStep("t:halt:b")
	b.applyErr = errors.New("boom")
	c := newFakeStep("t:halt:c")

	results := NewExecutor().Execute(context.Background(), planOf(a, b, c))

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Applied() {
		t.Errorf("first result = %s, want applied", results[0].Status())
	}
	if !results[1].Failed() {
		t.Errorf("second result = %s, want failed", results[1].Status())
	}
	if c.applies != 0 {
		t.Errorf("step after failure was applied")
	}
}

func TestExecutorContinueOnError(t *testing.T) {
	a := newFakeStep("t:cont:a")
	a.applyErr = errors.New("boom")
	b := newFakeStep("t:cont:b")

	results := NewExecutor().
		WithContinueOnError(true).
		Execute(context.Background(), planOf(a, b))

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Failed() || !results[1].Applied() {
		t.Errorf("statuses = %s, %s", results[0].Status(), results[1].Status())
	}
}

func TestExecutorSkipsDependentsOfFailedStep(t *testing.T) {
	a := newFakeStep("t:dep:a")
	a.applyErr = errors.New("boom")
	b := newFakeStep("t:dep:b")
	b.deps = []step.ID{a.id}

	results := NewExecutor().
		WithContinueOnError(true).
		Execute(context.Background(), planOf(a, b))

	if !results[1].Skipped() {
		t.Fatalf("dependent result = %s, want skipped", results[1].Status())
	}
	if want := "dependency failed: t:dep:a"; results[1].Detail() != want {
		t.Errorf("detail = %q, want %q", results[1].Detail(), want)
	}
	if b.applies != 0 {
		t.Errorf("dependent step was applied")
	}
}

func TestExecutorDryRun(t *testing.T) {
	s := newFakeStep("t:dry:a")

	results := NewExecutor().
		WithDryRun(true).
		Execute(context.Background(), planOf(s))

	if !results[0].Applied() {
		t.Fatalf("expected applied, got %s", results[0].Status())
	}
	if !strings.HasPrefix(results[0].Detail(), "dry run:") {
		t.Errorf("detail = %q", results[0].Detail())
	}
	if s.applies != 0 {
		t.Errorf("apply was called in dry run")
	}
}

func TestExecutorSkipSentinel(t *testing.T) {
	s := newFakeStep("t:skip:a")
	s.applyErr = fmt.Errorf("%w: anchor not found", step.ErrSkip)

	results := NewExecutor().Execute(context.Background(), planOf(s))

	if !results[0].Skipped() {
		t.Fatalf("expected skipped, got %s", results[0].Status())
	}
	if !strings.Contains(results[0].Detail(), "anchor not found") {
		t.Errorf("detail = %q", results[0].Detail())
	}
}

func TestExecutorStepTimeout(t *testing.T) {
	s := newFakeStep("t:slow:a")
	s.applyFn = func(ctx step.RunContext) error {
		<-ctx.Context().Done()
		return ctx.Context().Err()
	}

	results := NewExecutor().
		WithStepTimeout(10 * time.Millisecond).
		Execute(context.Background(), planOf(s))

	if !results[0].Failed() {
		t.Fatalf("expected failed, got %s", results[0].Status())
	}
	if !strings.Contains(results[0].Detail(), "timed out") {
		t.Errorf("detail = %q", results[0].Detail())
	}
}

func TestExecutorStopsAtStepBoundaryOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	a := newFakeStep("t:cancel:a")
	a.applyFn = func(step.RunContext) error {
		// Interrupt arrives while this step is in flight.
		cancel()
		return nil
	}
	b := newFakeStep("t:cancel:b")

	results := NewExecutor().Execute(ctx, planOf(a, b))

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Applied() {
		t.Errorf("in-flight step = %s, want applied", results[0].Status())
	}
	if b.applies != 0 {
		t.Errorf("step after cancellation was applied")
	}
}

func TestExecutorCheckErrorStillApplies(t *testing.T) {
	// A probe failure means "state unknown", which converges by applying.
	s := newFakeStep("t:unknown:a")
	s.checkErr = errors.New("probe failed")

	results := NewExecutor().Execute(context.Background(), planOf(s))

	if !results[0].Applied() {
		t.Fatalf("expected applied, got %s", results[0].Status())
	}
	if s.applies != 1 {
		t.Errorf("apply count = %d", s.applies)
	}
}
