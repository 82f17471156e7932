package ports

import "project-updater/internal/types"

// StabilityPolicyPort decides whether a package version is mature
// enough to be considered.
type StabilityPolicyPort interface {
	Accepts(pkg types.Package) bool
	MinStability() types.Stability
}
