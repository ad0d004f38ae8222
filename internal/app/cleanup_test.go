package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/ports/mocks"
	"cookbook-cleanup/internal/types"
)

type cleanupMocks struct {
	server  *mocks.MockChefServerPort
	confirm *mocks.MockConfirmPort
	report  *mocks.MockReportPort
	audit   *mocks.MockAuditPort
	metrics *mocks.MockMetricsPort
}

func newTestService(t *testing.T) (Service, cleanupMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := cleanupMocks{
		server:  mocks.NewMockChefServerPort(ctrl),
		confirm: mocks.NewMockConfirmPort(ctrl),
		report:  mocks.NewMockReportPort(ctrl),
		audit:   mocks.NewMockAuditPort(ctrl),
		metrics: mocks.NewMockMetricsPort(ctrl),
	}
	clock := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	service := Service{
		Server:   m.server,
		Confirm:  m.confirm,
		Report:   m.report,
		Audit:    m.audit,
		Metrics:  m.metrics,
		Clock:    func() time.Time { return clock },
		NewRunID: func() string { return "run-1" },
	}
	return service, m
}

// expectInventory serves nginx 2.0 1.2 1.1 1.0 with a production pin on 1.0.
func expectInventory(m cleanupMocks, keep int) {
	m.server.EXPECT().CookbookVersions(gomock.Any(), "", ports.AllVersions).
		Return(types.VersionSet{"nginx": {"2.0", "1.2", "1.1", "1.0"}}, nil)
	m.server.EXPECT().CookbookVersions(gomock.Any(), "", keep).
		Return(types.VersionSet{"nginx": []string{"2.0", "1.2", "1.1", "1.0"}[:keep]}, nil)
	m.server.EXPECT().ListEnvironments(gomock.Any()).Return([]string{"production"}, nil)
	m.server.EXPECT().LoadEnvironment(gomock.Any(), "production").
		Return(types.Environment{Name: "production", CookbookVersions: map[string]string{"nginx": "= 1.0"}}, nil)
}

func expectSinks(m cleanupMocks, captured *types.CleanupReport) {
	m.report.EXPECT().Report(gomock.Any()).DoAndReturn(func(report types.CleanupReport) error {
		*captured = report
		return nil
	})
	m.metrics.EXPECT().Observe(gomock.Any())
	m.metrics.EXPECT().Flush().Return(nil)
	m.audit.EXPECT().RecordRun(gomock.Any(), gomock.Any()).Return(nil)
}

func TestCleanupVersionsReportOnly(t *testing.T) {
	service, m := newTestService(t)
	expectInventory(m, 2)
	var report types.CleanupReport
	expectSinks(m, &report)

	result, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 2})
	require.NoError(t, err)

	require.Equal(t, "run-1", result.RunID)
	require.False(t, result.Confirmed)
	require.Equal(t, 1, result.Planned)
	require.Zero(t, result.Deleted)
	if diff := cmp.Diff(types.VersionSet{"nginx": {"1.1"}}, result.Plan.Delete); diff != "" {
		t.Fatalf("unexpected delete set (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"2.0", "1.2", "1.0"}, result.Plan.Keep["nginx"])
	require.Equal(t, []types.ActionResult{{Cookbook: "nginx", Version: "1.1", Status: types.ActionStatusSkipped}}, result.Results)
	require.Equal(t, types.ActionPolicyReportOnly, report.Config.Policy)
	require.Equal(t, types.DefaultBackupDir, report.Config.BackupDir)
}

func TestCleanupVersionsDeletesAfterConfirmation(t *testing.T) {
	service, m := newTestService(t)
	expectInventory(m, 2)
	var report types.CleanupReport
	expectSinks(m, &report)
	m.confirm.EXPECT().Confirm(gomock.Any(), "Do you really want to delete 1 unused cookbook versions from the server?").Return(true, nil).Times(1)
	m.server.EXPECT().DeleteCookbookVersion(gomock.Any(), "nginx", "1.1").Return(nil)

	result, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 2, Delete: true})
	require.NoError(t, err)

	require.True(t, result.Confirmed)
	require.Equal(t, 1, result.Deleted)
	require.Zero(t, result.Failed)
	require.True(t, report.Confirmed)
}

func TestCleanupVersionsDeclinedConfirmation(t *testing.T) {
	service, m := newTestService(t)
	expectInventory(m, 2)
	var report types.CleanupReport
	expectSinks(m, &report)
	m.confirm.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, nil)

	result, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 2, Delete: true, Backup: true})
	require.NoError(t, err)

	require.False(t, result.Confirmed)
	require.Zero(t, result.Deleted)
	require.Equal(t, types.ActionStatusSkipped, result.Results[0].Status)
	require.Equal(t, types.ActionPolicyDeleteWithBackup, report.Config.Policy)
}

func TestCleanupVersionsCountsFailedDeletes(t *testing.T) {
	service, m := newTestService(t)
	expectInventory(m, 2)
	var report types.CleanupReport
	expectSinks(m, &report)
	m.confirm.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
	m.server.EXPECT().DeleteCookbookVersion(gomock.Any(), "nginx", "1.1").
		Return(errbuilder.New().WithCode(errbuilder.CodePermissionDenied).WithMsg("forbidden"))

	result, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 2, Delete: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, types.ActionStatusDeleteFailed, result.Results[0].Status)
}

func TestCleanupVersionsKeepZeroSkipsLatestQuery(t *testing.T) {
	service, m := newTestService(t)
	m.server.EXPECT().CookbookVersions(gomock.Any(), "nginx", ports.AllVersions).
		Return(types.VersionSet{"nginx": {"2.0", "1.0"}}, nil).Times(1)
	m.server.EXPECT().ListEnvironments(gomock.Any()).Return(nil, nil)
	var report types.CleanupReport
	expectSinks(m, &report)

	result, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 0, Cookbook: " nginx "})
	require.NoError(t, err)
	require.Equal(t, []string{"2.0", "1.0"}, result.Plan.Delete["nginx"])
	require.Empty(t, result.Plan.Keep)
}

func TestCleanupVersionsNothingPendingSkipsConfirmation(t *testing.T) {
	service, m := newTestService(t)
	expectInventory(m, 4)
	var report types.CleanupReport
	expectSinks(m, &report)

	result, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 4, Delete: true})
	require.NoError(t, err)
	require.True(t, result.Confirmed)
	require.Empty(t, result.Results)
}

func TestCleanupVersionsInventoryFailureIsFatal(t *testing.T) {
	service, m := newTestService(t)
	m.server.EXPECT().CookbookVersions(gomock.Any(), "", ports.AllVersions).
		Return(nil, errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("cookbook not found"))

	_, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 3})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestCleanupVersionsEnvironmentListFailureIsFatal(t *testing.T) {
	service, m := newTestService(t)
	m.server.EXPECT().CookbookVersions(gomock.Any(), "", gomock.Any()).Return(types.VersionSet{}, nil).Times(2)
	m.server.EXPECT().ListEnvironments(gomock.Any()).
		Return(nil, errbuilder.New().WithCode(errbuilder.CodePermissionDenied).WithMsg("denied"))

	_, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 3})
	require.Equal(t, errbuilder.CodePermissionDenied, errbuilder.CodeOf(err))
}

func TestCleanupVersionsConfirmationError(t *testing.T) {
	service, m := newTestService(t)
	expectInventory(m, 2)
	m.confirm.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, errors.New("tty closed"))

	_, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 2, Delete: true})
	require.Error(t, err)
}

func TestCleanupVersionsAuditFailureOnlyWarns(t *testing.T) {
	service, m := newTestService(t)
	expectInventory(m, 2)
	m.report.EXPECT().Report(gomock.Any()).Return(nil)
	m.metrics.EXPECT().Observe(gomock.Any())
	m.metrics.EXPECT().Flush().Return(errors.New("disk full"))
	m.audit.EXPECT().RecordRun(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, record types.RunRecord) error {
		require.Equal(t, "run-1", record.RunID)
		require.NoError(t, ctx.Err())
		return errors.New("database is locked")
	})

	_, err := service.CleanupVersions(t.Context(), CleanupRequest{KeepCount: 2})
	require.NoError(t, err)
}

func TestBuildServerAdapter(t *testing.T) {
	_, err := buildServerAdapter("git", CleanupRequest{})
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = buildServerAdapter("file", CleanupRequest{})
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = buildServerAdapter("chef", CleanupRequest{ClientName: "pivotal", ClientKey: "key.pem"})
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	server, err := buildServerAdapter("file", CleanupRequest{InventoryFile: "inventory.yaml"})
	require.NoError(t, err)
	require.NotNil(t, server)
}

func TestHistory(t *testing.T) {
	service, m := newTestService(t)
	runs := []types.RunSummary{{RunID: "run-2"}, {RunID: "run-1"}}
	m.audit.EXPECT().ListRuns(gomock.Any(), 5).Return(runs, nil)

	result, err := service.History(t.Context(), HistoryRequest{Limit: 5})
	require.NoError(t, err)
	require.Equal(t, runs, result.Runs)

	_, err = Service{}.History(t.Context(), HistoryRequest{})
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
