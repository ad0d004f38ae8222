package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	_ "modernc.org/sqlite"

	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/types"
)

const defaultHistoryLimit = 20

// SQLiteAuditAdapter keeps a ledger of cleanup runs and the outcome of every
// planned cookbook version.
type SQLiteAuditAdapter struct {
	db   *sql.DB
	Path string
}

func NewSQLiteAuditAdapter(path string) (*SQLiteAuditAdapter, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("audit database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create audit database directory").
			WithCause(err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open audit database").
			WithCause(err)
	}
	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	adapter := &SQLiteAuditAdapter{db: db, Path: path}
	if err := adapter.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return adapter, nil
}

func (a *SQLiteAuditAdapter) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cleanup_runs (
		run_id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		policy TEXT NOT NULL,
		keep_count INTEGER NOT NULL,
		cookbook TEXT NOT NULL DEFAULT '',
		run_list TEXT NOT NULL DEFAULT '',
		confirmed INTEGER NOT NULL,
		planned INTEGER NOT NULL,
		deleted INTEGER NOT NULL,
		failed INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cleanup_actions (
		run_id TEXT NOT NULL REFERENCES cleanup_runs(run_id),
		seq INTEGER NOT NULL,
		cookbook TEXT NOT NULL,
		version TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_cleanup_runs_started ON cleanup_runs(started_at);
	`
	if _, err := a.db.Exec(schema); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to initialize audit schema").
			WithCause(err)
	}
	return nil
}

func (a *SQLiteAuditAdapter) RecordRun(ctx context.Context, record types.RunRecord) error {
	if strings.TrimSpace(record.RunID) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("run id is empty")
	}
	summary := summarizeRun(record)
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to begin audit transaction").
			WithCause(err)
	}
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO cleanup_runs (run_id, started_at, finished_at, policy, keep_count, cookbook, run_list, confirmed, planned, deleted, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.StartedAt.UnixNano(),
		summary.FinishedAt.UnixNano(),
		string(summary.Policy),
		summary.KeepCount,
		summary.Cookbook,
		summary.RunList,
		summary.Confirmed,
		summary.Planned,
		summary.Deleted,
		summary.Failed,
	)
	if err != nil {
		code := errbuilder.CodeInternal
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			code = errbuilder.CodeAlreadyExists
		}
		return errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("failed to record run %s", record.RunID)).
			WithCause(err)
	}
	for i, result := range record.Report.Results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cleanup_actions (run_id, seq, cookbook, version, status, error)
			VALUES (?, ?, ?, ?, ?, ?)`,
			record.RunID, i, result.Cookbook, result.Version, string(result.Status), result.Err,
		)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to record action result").
				WithCause(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to commit audit record").
			WithCause(err)
	}
	return nil
}

// ListRuns returns the most recent runs first.
func (a *SQLiteAuditAdapter) ListRuns(ctx context.Context, limit int) ([]types.RunSummary, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := a.db.QueryContext(ctx, `
		SELECT run_id, started_at, finished_at, policy, keep_count, cookbook, run_list, confirmed, planned, deleted, failed
		FROM cleanup_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to query audit history").
			WithCause(err)
	}
	defer rows.Close()
	var runs []types.RunSummary
	for rows.Next() {
		var summary types.RunSummary
		var started, finished int64
		var policy string
		if err := rows.Scan(
			&summary.RunID,
			&started,
			&finished,
			&policy,
			&summary.KeepCount,
			&summary.Cookbook,
			&summary.RunList,
			&summary.Confirmed,
			&summary.Planned,
			&summary.Deleted,
			&summary.Failed,
		); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read audit history").
				WithCause(err)
		}
		summary.StartedAt = time.Unix(0, started).UTC()
		summary.FinishedAt = time.Unix(0, finished).UTC()
		summary.Policy = types.ActionPolicy(policy)
		runs = append(runs, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read audit history").
			WithCause(err)
	}
	return runs, nil
}

// Actions returns the recorded results of one run in execution order.
func (a *SQLiteAuditAdapter) Actions(ctx context.Context, runID string) ([]types.ActionResult, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT cookbook, version, status, error
		FROM cleanup_actions
		WHERE run_id = ?
		ORDER BY seq`, runID)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to query audit actions").
			WithCause(err)
	}
	defer rows.Close()
	var results []types.ActionResult
	for rows.Next() {
		var result types.ActionResult
		var status string
		if err := rows.Scan(&result.Cookbook, &result.Version, &status, &result.Err); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read audit actions").
				WithCause(err)
		}
		result.Status = types.ActionStatus(status)
		results = append(results, result)
	}
	return results, rows.Err()
}

func (a *SQLiteAuditAdapter) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func summarizeRun(record types.RunRecord) types.RunSummary {
	report := record.Report
	planned := 0
	for _, name := range report.Plan.Pending() {
		planned += len(report.Plan.Delete[name])
	}
	return types.RunSummary{
		RunID:      record.RunID,
		StartedAt:  record.StartedAt,
		FinishedAt: record.FinishedAt,
		Policy:     report.Config.Policy,
		KeepCount:  report.Config.KeepCount,
		Cookbook:   report.Config.Cookbook,
		RunList:    report.Config.RunList,
		Confirmed:  report.Confirmed,
		Planned:    planned,
		Deleted:    report.Count(types.ActionStatusDeleted),
		Failed:     report.Count(types.ActionStatusBackupFailed) + report.Count(types.ActionStatusDeleteFailed),
	}
}

var _ ports.AuditPort = (*SQLiteAuditAdapter)(nil)
