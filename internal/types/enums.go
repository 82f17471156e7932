package types

import "strings"

// Stability classifies the maturity of a version. Values are ordered
// from least to most stable so a plain comparison acts as a threshold.
type Stability int

const (
	StabilityDev Stability = iota
	StabilityAlpha
	StabilityBeta
	StabilityRC
	StabilityStable
)

var stabilityNames = map[Stability]string{
	StabilityDev:    "dev",
	StabilityAlpha:  "alpha",
	StabilityBeta:   "beta",
	StabilityRC:     "RC",
	StabilityStable: "stable",
}

func (s Stability) String() string {
	if name, ok := stabilityNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStability matches a stability name case-insensitively.
func ParseStability(value string) (Stability, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for stability, name := range stabilityNames {
		if strings.ToLower(name) == normalized {
			return stability, true
		}
	}
	return StabilityStable, false
}

type RepositoryType string

const (
	RepositoryTypeComposer RepositoryType = "composer"
	RepositoryTypeIndex    RepositoryType = "index"
)

type DistType string

const (
	DistTypeZip DistType = "zip"
)

type ArchiveState string

const (
	ArchiveStatePending   ArchiveState = "pending"
	ArchiveStateExtracted ArchiveState = "extracted"
	ArchiveStateFailed    ArchiveState = "failed"
)
