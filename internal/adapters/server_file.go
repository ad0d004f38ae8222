package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/types"
)

// ServerFileAdapter serves a Chef server snapshot stored as YAML. It backs
// offline dry runs and tests. Versions are listed newest first.
type ServerFileAdapter struct {
	Path string
}

type serverSnapshot struct {
	Cookbooks    map[string][]string                  `yaml:"cookbooks"`
	Environments map[string]serverSnapshotEnvironment `yaml:"environments,omitempty"`
}

type serverSnapshotEnvironment struct {
	CookbookVersions map[string]string            `yaml:"cookbook_versions,omitempty"`
	RunLists         map[string]map[string]string `yaml:"run_lists,omitempty"`
}

type backupMetadata struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Source  string `yaml:"source"`
}

func NewServerFileAdapter(path string) ServerFileAdapter {
	return ServerFileAdapter{Path: path}
}

func (a ServerFileAdapter) CookbookVersions(ctx context.Context, cookbook string, num int) (types.VersionSet, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	names := []string{}
	if cookbook != "" {
		if _, ok := snapshot.Cookbooks[cookbook]; !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("cookbook not found: %s", cookbook))
		}
		names = append(names, cookbook)
	} else {
		for name := range snapshot.Cookbooks {
			names = append(names, name)
		}
	}
	out := types.VersionSet{}
	for _, name := range names {
		versions := snapshot.Cookbooks[name]
		if num >= 0 && len(versions) > num {
			versions = versions[:num]
		}
		out[name] = append([]string{}, versions...)
	}
	return out, nil
}

func (a ServerFileAdapter) ListEnvironments(ctx context.Context) ([]string, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(snapshot.Environments))
	for name := range snapshot.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (a ServerFileAdapter) LoadEnvironment(ctx context.Context, name string) (types.Environment, error) {
	env, err := a.environment(ctx, name)
	if err != nil {
		return types.Environment{}, err
	}
	pins := map[string]string{}
	for cookbook, constraint := range env.CookbookVersions {
		pins[cookbook] = constraint
	}
	return types.Environment{Name: name, CookbookVersions: pins}, nil
}

func (a ServerFileAdapter) ResolveRunList(ctx context.Context, environment string, runList []string) (map[string]string, error) {
	env, err := a.environment(ctx, environment)
	if err != nil {
		return nil, err
	}
	key := strings.Join(runList, ",")
	resolved, ok := env.RunLists[key]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("run list %q cannot be resolved in environment %s", key, environment))
	}
	out := make(map[string]string, len(resolved))
	for cookbook, version := range resolved {
		out[cookbook] = version
	}
	return out, nil
}

// DeleteCookbookVersion rewrites the snapshot without the version. A cookbook
// left with no versions is dropped.
func (a ServerFileAdapter) DeleteCookbookVersion(ctx context.Context, cookbook string, version string) error {
	snapshot, err := a.load(ctx)
	if err != nil {
		return err
	}
	set := types.VersionSet(snapshot.Cookbooks)
	if !set.Remove(cookbook, version) {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("cookbook version not found: %s@%s", cookbook, version))
	}
	if len(set[cookbook]) == 0 {
		delete(set, cookbook)
	}
	return a.save(snapshot)
}

func (a ServerFileAdapter) DownloadCookbookVersion(ctx context.Context, cookbook string, version string, destDir string) error {
	snapshot, err := a.load(ctx)
	if err != nil {
		return err
	}
	if !types.VersionSet(snapshot.Cookbooks).Contains(cookbook, version) {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("cookbook version not found: %s@%s", cookbook, version))
	}
	target := filepath.Join(destDir, cookbook+"-"+version)
	if err := os.MkdirAll(target, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create backup directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(backupMetadata{Name: cookbook, Version: version, Source: a.Path})
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode backup metadata").
			WithCause(err)
	}
	if err := os.WriteFile(filepath.Join(target, "metadata.yaml"), data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write backup metadata").
			WithCause(err)
	}
	return nil
}

func (a ServerFileAdapter) environment(ctx context.Context, name string) (serverSnapshotEnvironment, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return serverSnapshotEnvironment{}, err
	}
	env, ok := snapshot.Environments[name]
	if !ok {
		return serverSnapshotEnvironment{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("environment not found: %s", name))
	}
	return env, nil
}

func (a ServerFileAdapter) load(ctx context.Context) (serverSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return serverSnapshot{}, err
	}
	if strings.TrimSpace(a.Path) == "" {
		return serverSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("inventory file path is empty")
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return serverSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read inventory file").
			WithCause(err)
	}
	var snapshot serverSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return serverSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse inventory file").
			WithCause(err)
	}
	if snapshot.Cookbooks == nil {
		snapshot.Cookbooks = map[string][]string{}
	}
	return snapshot, nil
}

func (a ServerFileAdapter) save(snapshot serverSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode inventory file").
			WithCause(err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(a.Path), ".inventory-*.yaml")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temporary inventory file").
			WithCause(err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to set inventory file mode").
			WithCause(err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write inventory file").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write inventory file").
			WithCause(err)
	}
	if err := os.Rename(tmp.Name(), a.Path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace inventory file").
			WithCause(err)
	}
	return nil
}

var _ ports.ChefServerPort = ServerFileAdapter{}
