package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cookbook-cleanup/internal/ports/mocks"
	"cookbook-cleanup/internal/types"
)

func testPlan() types.DeletionPlan {
	return types.DeletionPlan{
		Delete: types.VersionSet{
			"nginx":  {"1.0", "1.2"},
			"apache": {"0.1"},
			"empty":  {},
		},
		Keep: types.VersionSet{"nginx": {"2.0"}},
	}
}

func TestExecutorReportOnlyTakesNoAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockChefServerPort(ctrl)

	executor := NewExecutor(types.CleanupConfig{}, server, server)
	results := executor.Apply(t.Context(), testPlan(), types.ActionPolicyReportOnly, true)

	want := []types.ActionResult{
		{Cookbook: "apache", Version: "0.1", Status: types.ActionStatusSkipped},
		{Cookbook: "nginx", Version: "1.0", Status: types.ActionStatusSkipped},
		{Cookbook: "nginx", Version: "1.2", Status: types.ActionStatusSkipped},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}
}

func TestExecutorUnconfirmedTakesNoAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockChefServerPort(ctrl)

	executor := NewExecutor(types.CleanupConfig{}, server, server)
	results := executor.Apply(t.Context(), testPlan(), types.ActionPolicyDeleteWithBackup, false)

	require.Len(t, results, 3)
	for _, result := range results {
		require.Equal(t, types.ActionStatusSkipped, result.Status)
	}
}

func TestExecutorContinuesAfterDeleteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	deleter := mocks.NewMockCookbookDeletePort(ctrl)
	gomock.InOrder(
		deleter.EXPECT().DeleteCookbookVersion(gomock.Any(), "apache", "0.1").Return(errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("chef server request failed")),
		deleter.EXPECT().DeleteCookbookVersion(gomock.Any(), "nginx", "1.0").Return(nil),
		deleter.EXPECT().DeleteCookbookVersion(gomock.Any(), "nginx", "1.2").Return(nil),
	)

	executor := NewExecutor(types.CleanupConfig{}, deleter, nil)
	results := executor.Apply(t.Context(), testPlan(), types.ActionPolicyDelete, true)

	require.Len(t, results, 3)
	require.Equal(t, types.ActionStatusDeleteFailed, results[0].Status)
	require.Contains(t, results[0].Err, "chef server request failed")
	require.Equal(t, types.ActionStatusDeleted, results[1].Status)
	require.Equal(t, types.ActionStatusDeleted, results[2].Status)
}

func TestExecutorBackupFailureStillDeletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockChefServerPort(ctrl)
	backupDir := filepath.Join(t.TempDir(), ".cleanup")

	plan := types.DeletionPlan{Delete: types.VersionSet{"nginx": {"1.0", "1.2"}}}
	gomock.InOrder(
		server.EXPECT().DownloadCookbookVersion(gomock.Any(), "nginx", "1.0", filepath.Join(backupDir, "nginx")).
			DoAndReturn(func(_ context.Context, cookbook string, version string, dir string) error {
				target := filepath.Join(dir, cookbook+"-"+version)
				require.NoError(t, os.MkdirAll(target, 0755))
				return os.WriteFile(filepath.Join(target, "metadata.rb"), []byte("name 'nginx'\n"), 0644)
			}),
		server.EXPECT().DeleteCookbookVersion(gomock.Any(), "nginx", "1.0").Return(nil),
		server.EXPECT().DownloadCookbookVersion(gomock.Any(), "nginx", "1.2", gomock.Any()).
			DoAndReturn(func(_ context.Context, cookbook string, version string, dir string) error {
				target := filepath.Join(dir, cookbook+"-"+version, "recipes")
				require.NoError(t, os.MkdirAll(target, 0755))
				require.NoError(t, os.WriteFile(filepath.Join(target, "default.rb"), []byte("# partial"), 0644))
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("download interrupted")
			}),
		server.EXPECT().DeleteCookbookVersion(gomock.Any(), "nginx", "1.2").Return(nil),
	)

	executor := NewExecutor(types.CleanupConfig{BackupDir: backupDir}, server, server)
	results := executor.Apply(t.Context(), plan, types.ActionPolicyDeleteWithBackup, true)

	statuses := make([]types.ActionStatus, 0, len(results))
	for _, result := range results {
		statuses = append(statuses, result.Status)
	}
	want := []types.ActionStatus{
		types.ActionStatusBackedUp,
		types.ActionStatusDeleted,
		types.ActionStatusBackupFailed,
		types.ActionStatusDeleted,
	}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Fatalf("unexpected statuses (-want +got):\n%s", diff)
	}
	require.Equal(t, "1.2", results[2].Version)

	_, err := os.Stat(filepath.Join(backupDir, "nginx", "nginx-1.0", "metadata.rb"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(backupDir, "nginx", "nginx-1.2"))
	require.True(t, os.IsNotExist(err))
}

func TestExecutorBackupDirectoryFailureStillDeletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockChefServerPort(ctrl)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0644))

	server.EXPECT().DeleteCookbookVersion(gomock.Any(), "apache", "0.1").Return(nil)

	plan := types.DeletionPlan{Delete: types.VersionSet{"apache": {"0.1"}}}
	executor := NewExecutor(types.CleanupConfig{BackupDir: blocker}, server, server)
	results := executor.Apply(t.Context(), plan, types.ActionPolicyDeleteWithBackup, true)

	require.Len(t, results, 2)
	require.Equal(t, types.ActionStatusBackupFailed, results[0].Status)
	require.Equal(t, types.ActionStatusDeleted, results[1].Status)
}

func TestExecutorCancelledContextSkipsRemaining(t *testing.T) {
	ctrl := gomock.NewController(t)
	deleter := mocks.NewMockCookbookDeletePort(ctrl)
	ctx, cancel := context.WithCancel(t.Context())
	deleter.EXPECT().DeleteCookbookVersion(gomock.Any(), "apache", "0.1").
		DoAndReturn(func(context.Context, string, string) error {
			cancel()
			return nil
		})

	executor := NewExecutor(types.CleanupConfig{}, deleter, nil)
	results := executor.Apply(ctx, testPlan(), types.ActionPolicyDelete, true)

	require.Len(t, results, 3)
	require.Equal(t, types.ActionStatusDeleted, results[0].Status)
	require.Equal(t, types.ActionStatusSkipped, results[1].Status)
	require.Equal(t, context.Canceled.Error(), results[1].Err)
	require.Equal(t, types.ActionStatusSkipped, results[2].Status)
}
