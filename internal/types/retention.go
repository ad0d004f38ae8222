package types

type ProtectionSource string

const (
	ProtectionSourceRunList ProtectionSource = "run_list"
	ProtectionSourcePin     ProtectionSource = "pin"
)

type Protection struct {
	Source      ProtectionSource
	Environment string
	Cookbook    string
	Version     string
}

// ResolutionSkip records a run-list that could not be resolved for an
// environment, or a resolved cookbook missing from the inventory when
// Cookbook is set. It never aborts a run.
type ResolutionSkip struct {
	Environment string
	Cookbook    string
	Reason      string
}

type DeletionPlan struct {
	Delete      VersionSet
	Keep        VersionSet
	Protections []Protection
	Skipped     []ResolutionSkip
}

// Pending returns the cookbooks with at least one version to delete, sorted
// by name.
func (p DeletionPlan) Pending() []string {
	var names []string
	for _, name := range p.Delete.Names() {
		if len(p.Delete[name]) > 0 {
			names = append(names, name)
		}
	}
	return names
}
