package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cookbook-cleanup/internal/app"
	"cookbook-cleanup/internal/types"
)

type historyOptions struct {
	AuditDB string
	Limit   int
	Since   string
}

func newHistoryCommand() *cobra.Command {
	opts := historyOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List cleanup runs recorded in the audit ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.AuditDB, "audit-db", "", "SQLite audit ledger path")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "Number of runs to show")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Only show runs started at or after this time (RFC3339 or YYYY-MM-DD)")
	_ = viper.BindPFlag("audit_db", cmd.Flags().Lookup("audit-db"))
	_ = viper.BindPFlag("history_limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("history_since", cmd.Flags().Lookup("since"))
	return cmd
}

func runHistory(ctx context.Context, cmd *cobra.Command, opts historyOptions) error {
	service := newAppService()
	result, err := service.History(ctx, app.HistoryRequest{
		AuditDB: resolveString(cmd, opts.AuditDB, "audit_db", "audit-db"),
		Limit:   resolveInt(cmd, opts.Limit, "history_limit", "limit"),
	})
	if err != nil {
		return err
	}
	since, err := parseSince(resolveString(cmd, opts.Since, "history_since", "since"))
	if err != nil {
		return err
	}
	return writeHistory(cmd.OutOrStdout(), runsSince(result.Runs, since))
}

func parseSince(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid --since time: %s", trimmed))
}

func runsSince(runs []types.RunSummary, since time.Time) []types.RunSummary {
	if since.IsZero() {
		return runs
	}
	var filtered []types.RunSummary
	for _, run := range runs {
		if !run.StartedAt.Before(since) {
			filtered = append(filtered, run)
		}
	}
	return filtered
}

func writeHistory(out io.Writer, runs []types.RunSummary) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RUN ID", "STARTED", "POLICY", "KEEP", "PLANNED", "DELETED", "FAILED")
	for _, run := range runs {
		policy := string(run.Policy)
		if run.Policy.Deletes() && !run.Confirmed {
			policy += " (declined)"
		}
		t.Row(
			run.RunID,
			run.StartedAt.Format(time.RFC3339),
			policy,
			strconv.Itoa(run.KeepCount),
			strconv.Itoa(run.Planned),
			strconv.Itoa(run.Deleted),
			strconv.Itoa(run.Failed),
		)
	}
	_, err := fmt.Fprintln(out, t.Render())
	return err
}
