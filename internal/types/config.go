package types

const (
	DefaultKeepCount = 3
	DefaultBackupDir = ".cleanup"
)

// CleanupConfig is the explicit run configuration handed to the resolver
// and the executor.
type CleanupConfig struct {
	KeepCount int
	Cookbook  string
	RunList   string
	Policy    ActionPolicy
	BackupDir string
	Verbose   bool
}

func (c CleanupConfig) Normalized() CleanupConfig {
	normalized := c
	if normalized.Policy == "" {
		normalized.Policy = ActionPolicyReportOnly
	}
	if normalized.BackupDir == "" {
		normalized.BackupDir = DefaultBackupDir
	}
	return normalized
}
