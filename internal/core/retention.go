package core

import (
	"context"
	"fmt"
	"sort"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/types"
)

// RetentionResolver computes which cookbook versions are safe to delete
// once the newest N, run-list resolutions and environment pins have been
// protected.
type RetentionResolver struct {
	Config       types.CleanupConfig
	Environments ports.EnvironmentPort
}

// retentionState is threaded through every protection step. Each step
// returns the state it was handed, extended with its own protections.
type retentionState struct {
	candidates  types.VersionSet
	keep        types.VersionSet
	protections []types.Protection
	skipped     []types.ResolutionSkip
}

func NewRetentionResolver(cfg types.CleanupConfig, environments ports.EnvironmentPort) RetentionResolver {
	return RetentionResolver{
		Config:       cfg,
		Environments: environments,
	}
}

// Resolve returns the deletion plan for the inventory. all and latest are
// not modified. A run-list that fails to resolve for an environment is
// recorded and skipped; failing to load an environment aborts the run.
func (r RetentionResolver) Resolve(ctx context.Context, all types.VersionSet, latest types.VersionSet, environments []string) (types.DeletionPlan, error) {
	if r.Environments == nil && len(environments) > 0 {
		return types.DeletionPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("retention resolver requires an environment port")
	}
	state := baselineState(all, latest)
	for _, env := range environments {
		assert.NotEmpty(ctx, env, "environment name must be set")
		if r.Config.RunList != "" {
			state = r.keepForRunList(ctx, state, env)
		}
		next, err := r.keepForPinned(ctx, state, env)
		if err != nil {
			return types.DeletionPlan{}, err
		}
		state = next
	}
	log.Ctx(ctx).Debug().
		Int("environments", len(environments)).
		Int("protected", len(state.protections)).
		Int("skipped", len(state.skipped)).
		Msg("retention resolved")
	return types.DeletionPlan{
		Delete:      state.candidates,
		Keep:        state.keep,
		Protections: state.protections,
		Skipped:     state.skipped,
	}, nil
}

// baselineState removes the newest N versions of every cookbook from the
// candidate set.
func baselineState(all types.VersionSet, latest types.VersionSet) retentionState {
	state := retentionState{
		candidates: all.Clone(),
		keep:       latest.Clone(),
	}
	for _, name := range latest.Names() {
		for _, version := range latest[name] {
			state.candidates.Remove(name, version)
		}
	}
	return state
}

func (r RetentionResolver) keepForRunList(ctx context.Context, state retentionState, env string) retentionState {
	resolved, err := r.Environments.ResolveRunList(ctx, env, []string{r.Config.RunList})
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("environment", env).Msg(fmt.Sprintf("run_list invalid for env [%s]", env))
		state.skipped = append(state.skipped, types.ResolutionSkip{
			Environment: env,
			Reason:      err.Error(),
		})
		return state
	}
	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := state.candidates[name]; !ok {
			state.skipped = append(state.skipped, types.ResolutionSkip{
				Environment: env,
				Cookbook:    name,
				Reason:      "cookbook not in inventory",
			})
			continue
		}
		state = protect(ctx, state, types.Protection{
			Source:      types.ProtectionSourceRunList,
			Environment: env,
			Cookbook:    name,
			Version:     resolved[name],
		})
	}
	return state
}

func (r RetentionResolver) keepForPinned(ctx context.Context, state retentionState, env string) (retentionState, error) {
	environment, err := r.Environments.LoadEnvironment(ctx, env)
	if err != nil {
		return state, errbuilder.New().
			WithCode(errbuilder.CodeOf(err)).
			WithMsg(fmt.Sprintf("failed to load environment %s", env)).
			WithCause(err)
	}
	names := make([]string, 0, len(environment.CookbookVersions))
	for name := range environment.CookbookVersions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		version := types.PinnedVersion(environment.CookbookVersions[name])
		if version == "" {
			continue
		}
		state = protect(ctx, state, types.Protection{
			Source:      types.ProtectionSourcePin,
			Environment: env,
			Cookbook:    name,
			Version:     version,
		})
	}
	return state, nil
}

// protect moves a version from the candidates to the keep set. Versions
// that are not candidates are left alone, so a version is protected at most
// once per run.
func protect(ctx context.Context, state retentionState, protection types.Protection) retentionState {
	if !state.candidates.Remove(protection.Cookbook, protection.Version) {
		return state
	}
	state.keep.Add(protection.Cookbook, protection.Version)
	state.protections = append(state.protections, protection)
	label := "runlist"
	if protection.Source == types.ProtectionSourcePin {
		label = "pinned"
	}
	log.Ctx(ctx).Debug().
		Str("cookbook", protection.Cookbook).
		Str("version", protection.Version).
		Str("environment", protection.Environment).
		Msg(fmt.Sprintf("keeping %s:%s for %s env [%s]", protection.Cookbook, protection.Version, label, protection.Environment))
	return state
}
