package types

import (
	"sort"
	"strings"
)

// VersionSet maps a cookbook name to its version identifiers in server
// order. Versions are opaque tokens compared for equality only.
type VersionSet map[string][]string

func (s VersionSet) Clone() VersionSet {
	cloned := make(VersionSet, len(s))
	for name, versions := range s {
		cloned[name] = append([]string{}, versions...)
	}
	return cloned
}

// Remove drops the first occurrence of version from the named cookbook and
// reports whether anything was removed.
func (s VersionSet) Remove(name string, version string) bool {
	versions, ok := s[name]
	if !ok {
		return false
	}
	for i, candidate := range versions {
		if candidate == version {
			s[name] = append(versions[:i:i], versions[i+1:]...)
			return true
		}
	}
	return false
}

func (s VersionSet) Add(name string, version string) {
	s[name] = append(s[name], version)
}

func (s VersionSet) Contains(name string, version string) bool {
	for _, candidate := range s[name] {
		if candidate == version {
			return true
		}
	}
	return false
}

func (s VersionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of versions across all cookbooks.
func (s VersionSet) Count() int {
	total := 0
	for _, versions := range s {
		total += len(versions)
	}
	return total
}

type Environment struct {
	Name             string
	CookbookVersions map[string]string
}

// PinnedVersion returns the last whitespace-delimited token of a cookbook
// version constraint, so "= 1.2.0" and "1.2.0" both yield "1.2.0". Richer
// operators such as "~> 1.2" are truncated the same way.
func PinnedVersion(constraint string) string {
	fields := strings.Fields(constraint)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
