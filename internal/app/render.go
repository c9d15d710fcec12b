package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hostprep/hostprep/internal/domain/execution"
	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/history"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	applyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	detailStyle  = lipgloss.NewStyle().Faint(true)
)

// RenderPlan renders a plan for the terminal: one line per step with its
// planned action, then a summary.
func RenderPlan(plan *execution.Plan) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Plan") + "\n")
	for _, entry := range plan.Entries() {
		id := entry.Step().ID().String()
		switch entry.Status() {
		case step.StatusSatisfied:
			fmt.Fprintf(&b, "  %s %s %s\n", skipStyle.Render("ok"), id, detailStyle.Render("(already satisfied)"))
		case step.StatusNeedsApply:
			fmt.Fprintf(&b, "  %s %s %s\n", applyStyle.Render("+ "), id, detailStyle.Render("("+entry.Diff().Summary()+")"))
		default:
			fmt.Fprintf(&b, "  %s %s %s\n", unknownStyle.Render("? "), id, detailStyle.Render("(state unknown, will apply)"))
		}
	}

	summary := plan.Summary()
	fmt.Fprintf(&b, "\n%d steps: %d to apply, %d satisfied, %d unknown\n",
		summary.Total, summary.NeedsApply, summary.Satisfied, summary.Unknown)
	return b.String()
}

// RenderReport renders execution results for the terminal.
func RenderReport(report execution.Report) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Results") + "\n")
	for _, res := range report.Results() {
		id := res.StepID().String()
		switch res.Status() {
		case step.StatusApplied:
			fmt.Fprintf(&b, "  %s %s", applyStyle.Render("applied"), id)
			if res.Detail() != "" {
				b.WriteString(" " + detailStyle.Render("("+res.Detail()+")"))
			}
		case step.StatusSkipped:
			fmt.Fprintf(&b, "  %s %s", skipStyle.Render("skipped"), id)
			if res.Detail() != "" {
				b.WriteString(" " + detailStyle.Render("("+res.Detail()+")"))
			}
		case step.StatusFailed:
			fmt.Fprintf(&b, "  %s %s: %s", failStyle.Render("failed "), id, res.Detail())
			var stepErr *step.Error
			if errors.As(res.Error(), &stepErr) && stepErr.Suggestion != "" {
				b.WriteString("\n          " + detailStyle.Render(stepErr.Suggestion))
			}
		}
		b.WriteString("\n")
	}

	line := report.Summary()
	if report.Success() {
		line = applyStyle.Render(line)
	} else {
		line = failStyle.Render(line)
	}
	fmt.Fprintf(&b, "\nSummary: %s (%s)\n", line, report.Duration().Round(time.Millisecond))
	return b.String()
}

// RenderHistory renders recorded runs, most recent first.
func RenderHistory(runs []history.RunRecord) string {
	if len(runs) == 0 {
		return "no recorded runs\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("History") + "\n")
	for _, run := range runs {
		status := applyStyle.Render("ok")
		if !run.Success {
			status = failStyle.Render("failed")
		}
		name := run.Manifest
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "  %s  %s  %s  %d applied, %d skipped, %d failed  %s\n",
			run.StartedAt.Format("2006-01-02 15:04:05"), status, name,
			run.Applied, run.Skipped, run.Failed, detailStyle.Render(run.ID))
	}
	return b.String()
}
