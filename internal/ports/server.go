package ports

import (
	"context"

	"cookbook-cleanup/internal/types"
)

// AllVersions requests every known version from CookbookVersions.
const AllVersions = -1

//go:generate mockgen -source=server.go -destination=mocks/mock_server.go -package=mocks
type CookbookInventoryPort interface {
	// CookbookVersions returns the newest num versions per cookbook, or every
	// version when num is AllVersions. An empty cookbook queries all cookbooks.
	CookbookVersions(ctx context.Context, cookbook string, num int) (types.VersionSet, error)
}

type EnvironmentPort interface {
	ListEnvironments(ctx context.Context) ([]string, error)
	LoadEnvironment(ctx context.Context, name string) (types.Environment, error)
	// ResolveRunList returns cookbook -> version as the server would solve
	// the run-list inside the environment.
	ResolveRunList(ctx context.Context, environment string, runList []string) (map[string]string, error)
}

type CookbookDeletePort interface {
	DeleteCookbookVersion(ctx context.Context, cookbook string, version string) error
}

type CookbookBackupPort interface {
	// DownloadCookbookVersion materializes the cookbook content under
	// destDir/<cookbook>-<version>/.
	DownloadCookbookVersion(ctx context.Context, cookbook string, version string, destDir string) error
}

type ChefServerPort interface {
	CookbookInventoryPort
	EnvironmentPort
	CookbookDeletePort
	CookbookBackupPort
}
