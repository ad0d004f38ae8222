package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/types"
)

// Executor applies an action policy to every version of a deletion plan.
// A failed backup or delete is recorded and the batch carries on.
type Executor struct {
	Config  types.CleanupConfig
	Deleter ports.CookbookDeletePort
	Backup  ports.CookbookBackupPort
}

func NewExecutor(cfg types.CleanupConfig, deleter ports.CookbookDeletePort, backup ports.CookbookBackupPort) Executor {
	return Executor{
		Config:  cfg.Normalized(),
		Deleter: deleter,
		Backup:  backup,
	}
}

// Apply walks the plan in cookbook name order. Nothing is mutated unless
// the policy deletes and the operator confirmed.
func (e Executor) Apply(ctx context.Context, plan types.DeletionPlan, policy types.ActionPolicy, confirmed bool) []types.ActionResult {
	var results []types.ActionResult
	mutate := policy.Deletes() && confirmed
	for _, cookbook := range plan.Pending() {
		for _, version := range plan.Delete[cookbook] {
			if !mutate {
				results = append(results, skipped(cookbook, version, ""))
				continue
			}
			if err := ctx.Err(); err != nil {
				results = append(results, skipped(cookbook, version, err.Error()))
				continue
			}
			if policy.BacksUp() {
				results = append(results, e.backupVersion(ctx, cookbook, version))
			}
			results = append(results, e.deleteVersion(ctx, cookbook, version))
		}
	}
	return results
}

func (e Executor) backupVersion(ctx context.Context, cookbook string, version string) types.ActionResult {
	logger := log.Ctx(ctx)
	logger.Info().Msg(fmt.Sprintf("Backing up cookbook %s@%s", cookbook, version))
	if e.Backup == nil {
		return failed(types.ActionStatusBackupFailed, cookbook, version, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no backup downloader configured"))
	}
	dir := filepath.Join(e.Config.BackupDir, cookbook)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return failed(types.ActionStatusBackupFailed, cookbook, version, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create backup directory").
			WithCause(err))
	}
	if err := e.Backup.DownloadCookbookVersion(ctx, cookbook, version, dir); err != nil {
		logger.Warn().Err(err).Msg(fmt.Sprintf("Failed to back up cookbook %s@%s, deleting anyway", cookbook, version))
		staging := filepath.Join(dir, cookbook+"-"+version)
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", staging).Msg("failed to clean up partial backup")
		}
		return failed(types.ActionStatusBackupFailed, cookbook, version, err)
	}
	return types.ActionResult{Cookbook: cookbook, Version: version, Status: types.ActionStatusBackedUp}
}

func (e Executor) deleteVersion(ctx context.Context, cookbook string, version string) types.ActionResult {
	log.Ctx(ctx).Info().Msg(fmt.Sprintf("Deleting cookbook %s@%s", cookbook, version))
	if e.Deleter == nil {
		return failed(types.ActionStatusDeleteFailed, cookbook, version, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no cookbook deleter configured"))
	}
	if err := e.Deleter.DeleteCookbookVersion(ctx, cookbook, version); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("cookbook", cookbook).Str("version", version).Msg("delete failed")
		return failed(types.ActionStatusDeleteFailed, cookbook, version, err)
	}
	return types.ActionResult{Cookbook: cookbook, Version: version, Status: types.ActionStatusDeleted}
}

func skipped(cookbook string, version string, reason string) types.ActionResult {
	return types.ActionResult{Cookbook: cookbook, Version: version, Status: types.ActionStatusSkipped, Err: reason}
}

func failed(status types.ActionStatus, cookbook string, version string, err error) types.ActionResult {
	return types.ActionResult{Cookbook: cookbook, Version: version, Status: status, Err: err.Error()}
}
