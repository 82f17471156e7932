package types

import "github.com/Masterminds/semver/v3"

// VersionConstraint is a parsed user constraint. Branch constraints
// (dev-main, 1.x-dev) match only the identically named version; when
// both Parsed and Branch are empty the constraint accepts any version.
type VersionConstraint struct {
	Raw    string
	Parsed *semver.Constraints
	Branch string
}

func (c VersionConstraint) IsAny() bool {
	return c.Parsed == nil && c.Branch == ""
}

func (c VersionConstraint) String() string {
	if c.IsAny() {
		return "*"
	}
	return c.Raw
}

// Requirement is the outcome of interpreting a version token: the
// constraint to satisfy and the minimum stability to accept.
type Requirement struct {
	Constraint   VersionConstraint
	MinStability Stability
}
