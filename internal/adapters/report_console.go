package adapters

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/types"
)

const reportOnlyNotice = "Not deleting unused cookbook versions; use --delete if you want to remove them"
const notConfirmedNotice = "Deletion not confirmed; no cookbook versions were removed"

// ConsoleReportAdapter prints the cleanup plan and action results.
type ConsoleReportAdapter struct {
	Out      io.Writer
	Renderer *lipgloss.Renderer
}

type reportStyles struct {
	header  lipgloss.Style
	name    lipgloss.Style
	keep    lipgloss.Style
	remove  lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	notice  lipgloss.Style
	verbose lipgloss.Style
}

func NewConsoleReportAdapter(out io.Writer) ConsoleReportAdapter {
	renderer := lipgloss.NewRenderer(out)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return ConsoleReportAdapter{Out: out, Renderer: renderer}
}

func newReportStyles(renderer *lipgloss.Renderer) reportStyles {
	return reportStyles{
		header:  renderer.NewStyle().Bold(true),
		name:    renderer.NewStyle().Foreground(lipgloss.Color("12")),
		keep:    renderer.NewStyle().Faint(true),
		remove:  renderer.NewStyle().Foreground(lipgloss.Color("9")),
		ok:      renderer.NewStyle().Foreground(lipgloss.Color("10")),
		failed:  renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		notice:  renderer.NewStyle().Foreground(lipgloss.Color("11")),
		verbose: renderer.NewStyle().Faint(true),
	}
}

func (a ConsoleReportAdapter) Report(report types.CleanupReport) error {
	if a.Out == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report output is not configured")
	}
	renderer := a.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(a.Out)
	}
	var b strings.Builder
	writeCleanupReport(&b, newReportStyles(renderer), report)
	if _, err := io.WriteString(a.Out, b.String()); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report").
			WithCause(err)
	}
	return nil
}

func writeCleanupReport(b *strings.Builder, styles reportStyles, report types.CleanupReport) {
	plan := report.Plan
	b.WriteString(styles.header.Render("Cookbook Versions:") + "\n")
	width := 0
	for name := range plan.Delete {
		if len(name)+2 > width {
			width = len(name) + 2
		}
	}
	byCookbook := map[string][]types.ActionResult{}
	for _, result := range report.Results {
		byCookbook[result.Cookbook] = append(byCookbook[result.Cookbook], result)
	}
	acted := report.Config.Policy.Deletes() && report.Confirmed
	for _, name := range plan.Pending() {
		versions := plan.Delete[name]
		b.WriteString("  ")
		if report.Config.Verbose {
			fmt.Fprintf(b, "  %2d ", len(versions))
		}
		b.WriteString(styles.name.Render(fmt.Sprintf("%-*s", width, name)))
		b.WriteString(styles.keep.Render("[keeping" + joinPrefixed(plan.Keep[name]) + "]"))
		b.WriteString(" " + styles.remove.Render(strings.Join(versions, " ")) + "\n")
		if !acted {
			continue
		}
		for _, result := range byCookbook[name] {
			writeActionResult(b, styles, result)
		}
	}
	if report.Config.Verbose {
		for _, skip := range plan.Skipped {
			if skip.Cookbook == "" {
				b.WriteString(styles.verbose.Render(fmt.Sprintf(" run_list invalid for env [%s]: %s", skip.Environment, skip.Reason)) + "\n")
				continue
			}
			b.WriteString(styles.verbose.Render(fmt.Sprintf(" skipping %s for runlist env [%s]: %s", skip.Cookbook, skip.Environment, skip.Reason)) + "\n")
		}
	}
	switch {
	case !report.Config.Policy.Deletes():
		b.WriteString(styles.notice.Render(reportOnlyNotice) + "\n")
	case !report.Confirmed:
		b.WriteString(styles.notice.Render(notConfirmedNotice) + "\n")
	default:
		planned := 0
		for _, result := range report.Results {
			if result.Status.Terminal() {
				planned++
			}
		}
		deleted := report.Count(types.ActionStatusDeleted)
		summary := fmt.Sprintf("Deleted %d of %d cookbook versions", deleted, planned)
		failures := report.Count(types.ActionStatusDeleteFailed)
		backupFailures := report.Count(types.ActionStatusBackupFailed)
		if failures > 0 || backupFailures > 0 {
			summary += fmt.Sprintf(" (%d delete failures, %d backup failures)", failures, backupFailures)
			b.WriteString(styles.failed.Render(summary) + "\n")
			return
		}
		b.WriteString(styles.ok.Render(summary) + "\n")
	}
}

func writeActionResult(b *strings.Builder, styles reportStyles, result types.ActionResult) {
	label := fmt.Sprintf("%s@%s", result.Cookbook, result.Version)
	switch result.Status {
	case types.ActionStatusBackedUp:
		b.WriteString("    " + styles.ok.Render("backed up "+label) + "\n")
	case types.ActionStatusBackupFailed:
		b.WriteString("    " + styles.failed.Render(fmt.Sprintf("failed to back up %s: %s", label, result.Err)) + "\n")
	case types.ActionStatusDeleted:
		b.WriteString("    " + styles.ok.Render("deleted "+label) + "\n")
	case types.ActionStatusDeleteFailed:
		b.WriteString("    " + styles.failed.Render(fmt.Sprintf("failed to delete %s: %s", label, result.Err)) + "\n")
	case types.ActionStatusSkipped:
		b.WriteString("    " + styles.notice.Render(fmt.Sprintf("skipped %s: %s", label, result.Err)) + "\n")
	}
}

func joinPrefixed(values []string) string {
	var b strings.Builder
	for _, value := range values {
		b.WriteString(" " + value)
	}
	return b.String()
}

var _ ports.ReportPort = ConsoleReportAdapter{}
