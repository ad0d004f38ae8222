//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"cookbook-cleanup/internal/adapters"
	"cookbook-cleanup/internal/app"
	"cookbook-cleanup/internal/types"
	"cookbook-cleanup/tests/testutil"
)

type chefRequest struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	UserID string `json:"user_id"`
	Signed bool   `json:"signed"`
}

func TestChefCleanupWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startChefMock(ctx, t)
	t.Cleanup(cleanup)

	root := t.TempDir()
	backupDir := filepath.Join(root, "backup")
	auditDB := filepath.Join(root, "audit.db")

	service := app.NewService()
	service.Report = adapters.NewConsoleReportAdapter(io.Discard)
	result, err := service.CleanupVersions(ctx, app.CleanupRequest{
		KeepCount:     1,
		RunList:       "recipe[nginx]",
		Delete:        true,
		Backup:        true,
		AssumeYes:     true,
		BackupDir:     backupDir,
		ServerBackend: "chef",
		ServerURL:     endpoint + "/organizations/acme",
		ClientName:    "pivotal",
		ClientKey:     testutil.WriteClientKey(t),
		TimeoutSec:    10,
		Retries:       3,
		RetryDelayMs:  100,
		AuditDB:       auditDB,
	})
	require.NoError(t, err)

	require.Equal(t, types.VersionSet{"nginx": {"1.0"}}, result.Plan.Delete)
	require.Equal(t, []string{"2.0", "1.2", "1.1"}, result.Plan.Keep["nginx"])
	require.Len(t, result.Plan.Skipped, 1)
	require.Equal(t, "production", result.Plan.Skipped[0].Environment)
	require.Equal(t, 1, result.Deleted)
	require.Zero(t, result.Failed)

	content, err := os.ReadFile(filepath.Join(backupDir, "nginx", "nginx-1.0", "recipes", "default.rb"))
	require.NoError(t, err)
	require.Equal(t, "package 'nginx'\n", string(content))

	requests, err := fetchChefRequests(endpoint)
	require.NoError(t, err)
	deletes := 0
	for _, req := range requests {
		if req.Path == "/_requests" {
			continue
		}
		if req.Path != "/files/default.rb" {
			require.True(t, req.Signed, "unsigned request %s %s", req.Method, req.Path)
			require.Equal(t, "pivotal", req.UserID)
		}
		if req.Method == http.MethodDelete {
			deletes++
			require.Equal(t, "/organizations/acme/cookbooks/nginx/1.0", req.Path)
		}
	}
	require.Equal(t, 1, deletes)

	ledger, err := adapters.NewSQLiteAuditAdapter(auditDB)
	require.NoError(t, err)
	defer ledger.Close()
	runs, err := ledger.ListRuns(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, result.RunID, runs[0].RunID)
}

func TestChefCleanupReportOnlyWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startChefMock(ctx, t)
	t.Cleanup(cleanup)

	service := app.NewService()
	service.Report = adapters.NewConsoleReportAdapter(io.Discard)
	result, err := service.CleanupVersions(ctx, app.CleanupRequest{
		KeepCount:     2,
		ServerBackend: "chef",
		ServerURL:     endpoint + "/organizations/acme",
		ClientName:    "pivotal",
		ClientKey:     testutil.WriteClientKey(t),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"1.0"}, result.Plan.Delete["nginx"])
	require.False(t, result.Confirmed)

	requests, err := fetchChefRequests(endpoint)
	require.NoError(t, err)
	for _, req := range requests {
		require.NotEqual(t, http.MethodDelete, req.Method)
	}
}

func startChefMock(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8889/tcp"},
		Cmd:          []string{"python", "-c", chefMockScript},
		WaitingFor:   wait.ForListeningPort("8889/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8889/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

func fetchChefRequests(endpoint string) ([]chefRequest, error) {
	resp, err := http.Get(endpoint + "/_requests")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var requests []chefRequest
	if err := json.NewDecoder(resp.Body).Decode(&requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// chefMockScript serves nginx 2.0 1.2 1.1 1.0. The dev environment resolves
// recipe[nginx] to 1.2, production pins 1.1 and cannot resolve run-lists.
const chefMockScript = `
import json
from http.server import BaseHTTPRequestHandler, HTTPServer
from urllib.parse import urlparse, parse_qs

ORG = "/organizations/acme"
COOKBOOKS = {"nginx": ["2.0", "1.2", "1.1", "1.0"]}
ENVIRONMENTS = {
    "dev": {"name": "dev", "cookbook_versions": {}},
    "production": {"name": "production", "cookbook_versions": {"nginx": "= 1.1"}},
}
REQUESTS = []

class Handler(BaseHTTPRequestHandler):
    def log_message(self, fmt, *args):
        return

    def record(self, path):
        REQUESTS.append({
            "method": self.command,
            "path": path,
            "user_id": self.headers.get("X-Ops-UserId", ""),
            "signed": bool(self.headers.get("X-Ops-Authorization-1")),
        })

    def reply(self, status, body):
        data = json.dumps(body).encode()
        self.send_response(status)
        self.send_header("Content-Type", "application/json")
        self.send_header("Content-Length", str(len(data)))
        self.end_headers()
        self.wfile.write(data)

    def base(self):
        return "http://%s" % self.headers.get("Host")

    def listing(self, names, num):
        out = {}
        for name in names:
            versions = COOKBOOKS[name]
            if num != "all":
                versions = versions[:int(num)]
            out[name] = {"url": "", "versions": [{"version": v, "url": ""} for v in versions]}
        return out

    def do_GET(self):
        parsed = urlparse(self.path)
        path = parsed.path
        self.record(path)
        if path == "/_requests":
            return self.reply(200, REQUESTS)
        if path == "/files/default.rb":
            data = b"package 'nginx'\n"
            self.send_response(200)
            self.send_header("Content-Length", str(len(data)))
            self.end_headers()
            self.wfile.write(data)
            return
        num = parse_qs(parsed.query).get("num_versions", ["all"])[0]
        if path == ORG + "/cookbooks":
            return self.reply(200, self.listing(sorted(COOKBOOKS), num))
        if path == ORG + "/environments":
            return self.reply(200, {name: "" for name in ENVIRONMENTS})
        parts = path[len(ORG):].strip("/").split("/")
        if parts[0] == "environments" and len(parts) == 2 and parts[1] in ENVIRONMENTS:
            return self.reply(200, ENVIRONMENTS[parts[1]])
        if parts[0] == "cookbooks" and len(parts) == 2 and parts[1] in COOKBOOKS:
            return self.reply(200, self.listing([parts[1]], num))
        if parts[0] == "cookbooks" and len(parts) == 3 and parts[2] in COOKBOOKS.get(parts[1], []):
            return self.reply(200, {
                "cookbook_name": parts[1],
                "version": parts[2],
                "all_files": [{
                    "name": "recipes/default.rb",
                    "path": "recipes/default.rb",
                    "url": self.base() + "/files/default.rb",
                }],
            })
        self.reply(404, {"error": ["not found"]})

    def do_POST(self):
        path = urlparse(self.path).path
        self.record(path)
        length = int(self.headers.get("Content-Length", "0"))
        body = json.loads(self.rfile.read(length) or b"{}")
        if path == ORG + "/environments/dev/cookbook_versions" and body.get("run_list") == ["recipe[nginx]"]:
            return self.reply(200, {"nginx": {"cookbook_name": "nginx", "version": "1.2"}})
        self.reply(412, {"error": ["unable to solve dependencies"]})

    def do_DELETE(self):
        path = urlparse(self.path).path
        self.record(path)
        parts = path[len(ORG):].strip("/").split("/")
        if len(parts) == 3 and parts[0] == "cookbooks" and parts[2] in COOKBOOKS.get(parts[1], []):
            COOKBOOKS[parts[1]].remove(parts[2])
            return self.reply(200, {"name": parts[1], "version": parts[2]})
        self.reply(404, {"error": ["not found"]})

HTTPServer(("0.0.0.0", 8889), Handler).serve_forever()
`
