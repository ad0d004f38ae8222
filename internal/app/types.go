package app

import "cookbook-cleanup/internal/types"

type CleanupRequest struct {
	KeepCount     int
	Cookbook      string
	RunList       string
	Delete        bool
	Backup        bool
	BackupDir     string
	Verbose       bool
	AssumeYes     bool
	ServerBackend string
	ServerURL     string
	ClientName    string
	ClientKey     string
	InventoryFile string
	TimeoutSec    int
	Retries       int
	RetryDelayMs  int
	AuditDB       string
	MetricsFile   string
}

type CleanupResult struct {
	RunID     string
	Plan      types.DeletionPlan
	Results   []types.ActionResult
	Confirmed bool
	Planned   int
	Deleted   int
	Failed    int
}

type HistoryRequest struct {
	AuditDB string
	Limit   int
}

type HistoryResult struct {
	Runs []types.RunSummary
}
