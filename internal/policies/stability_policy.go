package policies

import (
	"project-updater/internal/ports"
	"project-updater/internal/types"
)

// StabilityPolicy accepts package versions at or above a minimum
// stability.
type StabilityPolicy struct {
	Minimum types.Stability
}

func NewStabilityPolicy(minimum types.Stability) StabilityPolicy {
	return StabilityPolicy{Minimum: minimum}
}

func (p StabilityPolicy) Accepts(pkg types.Package) bool {
	return pkg.Stability >= p.Minimum
}

func (p StabilityPolicy) MinStability() types.Stability {
	return p.Minimum
}

var _ ports.StabilityPolicyPort = StabilityPolicy{}
