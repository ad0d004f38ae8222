package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"cookbook-cleanup/internal/adapters"
	"cookbook-cleanup/internal/core"
	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/types"
)

// CleanupVersions plans and applies one cleanup run. Failing to read the
// inventory or the environments aborts before anything is changed. Failed
// actions are reported in the result, not as an error.
func (s Service) CleanupVersions(ctx context.Context, req CleanupRequest) (CleanupResult, error) {
	cfg := cleanupConfig(req)
	server, err := s.serverFor(req)
	if err != nil {
		return CleanupResult{}, err
	}
	started := timeNow(s.Clock)
	runID := s.runID()
	logger := log.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().Msg("Searching for unused cookbook versions...")
	all, err := server.CookbookVersions(ctx, cfg.Cookbook, ports.AllVersions)
	if err != nil {
		return CleanupResult{}, wrapFatal(err, "failed to list cookbook versions")
	}
	latest := types.VersionSet{}
	if cfg.KeepCount > 0 {
		latest, err = server.CookbookVersions(ctx, cfg.Cookbook, cfg.KeepCount)
		if err != nil {
			return CleanupResult{}, wrapFatal(err, "failed to list latest cookbook versions")
		}
	}
	environments, err := server.ListEnvironments(ctx)
	if err != nil {
		return CleanupResult{}, wrapFatal(err, "failed to list environments")
	}
	plan, err := core.NewRetentionResolver(cfg, server).Resolve(ctx, all, latest, environments)
	if err != nil {
		return CleanupResult{}, err
	}

	confirmed, err := s.confirm(ctx, req, cfg, plan)
	if err != nil {
		return CleanupResult{}, err
	}
	results := NewExecutor(cfg, server, server).Apply(ctx, plan, cfg.Policy, confirmed)
	report := types.CleanupReport{
		Config:    cfg,
		Plan:      plan,
		Confirmed: confirmed,
		Results:   results,
	}
	var reportErr error
	if s.Report != nil {
		reportErr = s.Report.Report(report)
	}
	s.observe(ctx, req, report)
	s.record(ctx, req, types.RunRecord{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: timeNow(s.Clock),
		Report:     report,
	})

	result := CleanupResult{
		RunID:     runID,
		Plan:      plan,
		Results:   results,
		Confirmed: confirmed,
		Planned:   plannedCount(plan),
		Deleted:   report.Count(types.ActionStatusDeleted),
		Failed:    report.Count(types.ActionStatusBackupFailed) + report.Count(types.ActionStatusDeleteFailed),
	}
	if reportErr != nil {
		return result, reportErr
	}
	return result, nil
}

// confirm asks once, and only when the run would delete something.
func (s Service) confirm(ctx context.Context, req CleanupRequest, cfg types.CleanupConfig, plan types.DeletionPlan) (bool, error) {
	if !cfg.Policy.Deletes() {
		return false, nil
	}
	planned := plannedCount(plan)
	if planned == 0 {
		return true, nil
	}
	confirmer := s.Confirm
	if confirmer == nil {
		confirmer = adapters.NewConfirmPromptAdapter(req.AssumeYes)
	}
	prompt := fmt.Sprintf("Do you really want to delete %d unused cookbook versions from the server?", planned)
	confirmed, err := confirmer.Confirm(ctx, prompt)
	if err != nil {
		return false, err
	}
	if !confirmed {
		log.Ctx(ctx).Warn().Msg("deletion not confirmed")
	}
	return confirmed, nil
}

func (s Service) observe(ctx context.Context, req CleanupRequest, report types.CleanupReport) {
	metrics := s.Metrics
	if metrics == nil {
		if strings.TrimSpace(req.MetricsFile) == "" {
			return
		}
		metrics = adapters.NewTextfileMetricsAdapter(req.MetricsFile)
	}
	metrics.Observe(report)
	if err := metrics.Flush(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to write metrics")
	}
}

func (s Service) record(ctx context.Context, req CleanupRequest, record types.RunRecord) {
	audit := s.Audit
	if audit == nil {
		if strings.TrimSpace(req.AuditDB) == "" {
			return
		}
		ledger, err := adapters.NewSQLiteAuditAdapter(req.AuditDB)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to open audit ledger")
			return
		}
		defer ledger.Close()
		audit = ledger
	}
	// recorded even when ctx was cancelled mid-run
	if err := audit.RecordRun(context.WithoutCancel(ctx), record); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to record cleanup run")
	}
}

// History lists recorded runs, newest first.
func (s Service) History(ctx context.Context, req HistoryRequest) (HistoryResult, error) {
	audit := s.Audit
	if audit == nil {
		if strings.TrimSpace(req.AuditDB) == "" {
			return HistoryResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("audit database is required")
		}
		ledger, err := adapters.NewSQLiteAuditAdapter(req.AuditDB)
		if err != nil {
			return HistoryResult{}, err
		}
		defer ledger.Close()
		audit = ledger
	}
	runs, err := audit.ListRuns(ctx, req.Limit)
	if err != nil {
		return HistoryResult{}, err
	}
	return HistoryResult{Runs: runs}, nil
}

func (s Service) serverFor(req CleanupRequest) (ports.ChefServerPort, error) {
	if s.Server != nil {
		return s.Server, nil
	}
	backend := strings.ToLower(strings.TrimSpace(req.ServerBackend))
	if backend == "" {
		backend = "chef"
	}
	return buildServerAdapter(backend, req)
}

func buildServerAdapter(backend string, req CleanupRequest) (ports.ChefServerPort, error) {
	switch backend {
	case "chef":
		client, err := adapters.NewChefClient(
			req.ServerURL,
			req.ClientName,
			req.ClientKey,
			req.TimeoutSec,
			req.Retries,
			req.RetryDelayMs,
		)
		if err != nil {
			return nil, err
		}
		return adapters.NewChefServerAdapter(client), nil
	case "file":
		path := strings.TrimSpace(req.InventoryFile)
		if path == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("inventory file is required for file backend")
		}
		return adapters.NewServerFileAdapter(path), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported server backend: %s", backend))
	}
}

func cleanupConfig(req CleanupRequest) types.CleanupConfig {
	return types.CleanupConfig{
		KeepCount: req.KeepCount,
		Cookbook:  strings.TrimSpace(req.Cookbook),
		RunList:   strings.TrimSpace(req.RunList),
		Policy:    types.PolicyFor(req.Delete, req.Backup),
		BackupDir: strings.TrimSpace(req.BackupDir),
		Verbose:   req.Verbose,
	}.Normalized()
}

func plannedCount(plan types.DeletionPlan) int {
	total := 0
	for _, name := range plan.Pending() {
		total += len(plan.Delete[name])
	}
	return total
}

func wrapFatal(err error, msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeOf(err)).
		WithMsg(msg).
		WithCause(err)
}
