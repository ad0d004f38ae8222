package types

import "time"

type ActionPolicy string

const (
	ActionPolicyReportOnly       ActionPolicy = "report-only"
	ActionPolicyDelete           ActionPolicy = "delete"
	ActionPolicyDeleteWithBackup ActionPolicy = "delete-with-backup"
)

func (p ActionPolicy) Deletes() bool {
	return p == ActionPolicyDelete || p == ActionPolicyDeleteWithBackup
}

func (p ActionPolicy) BacksUp() bool {
	return p == ActionPolicyDeleteWithBackup
}

// PolicyFor maps the delete and backup switches to an action policy. Backup
// without delete stays report-only.
func PolicyFor(deleteEnabled bool, backupEnabled bool) ActionPolicy {
	switch {
	case deleteEnabled && backupEnabled:
		return ActionPolicyDeleteWithBackup
	case deleteEnabled:
		return ActionPolicyDelete
	default:
		return ActionPolicyReportOnly
	}
}

type ActionStatus string

const (
	ActionStatusSkipped      ActionStatus = "skipped"
	ActionStatusBackedUp     ActionStatus = "backed-up"
	ActionStatusBackupFailed ActionStatus = "backup-failed"
	ActionStatusDeleted      ActionStatus = "deleted"
	ActionStatusDeleteFailed ActionStatus = "delete-failed"
)

func (s ActionStatus) Terminal() bool {
	switch s {
	case ActionStatusSkipped, ActionStatusDeleted, ActionStatusDeleteFailed:
		return true
	default:
		return false
	}
}

func (s ActionStatus) Failed() bool {
	return s == ActionStatusBackupFailed || s == ActionStatusDeleteFailed
}

type ActionResult struct {
	Cookbook string
	Version  string
	Status   ActionStatus
	Err      string
}

// CleanupReport is everything rendered to the operator after a run.
type CleanupReport struct {
	Config    CleanupConfig
	Plan      DeletionPlan
	Confirmed bool
	Results   []ActionResult
}

// Count returns how many results ended in status.
func (r CleanupReport) Count(status ActionStatus) int {
	total := 0
	for _, result := range r.Results {
		if result.Status == status {
			total++
		}
	}
	return total
}

type RunRecord struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Report     CleanupReport
}

// RunSummary is one row of the audit history.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Policy     ActionPolicy
	KeepCount  int
	Cookbook   string
	RunList    string
	Confirmed  bool
	Planned    int
	Deleted    int
	Failed     int
}
