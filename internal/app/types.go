package app

import (
	"fmt"

	"project-updater/internal/core"
	"project-updater/internal/types"
)

// UpdateRequest selects the project directory and optional explicit
// package name and version token.
type UpdateRequest struct {
	WorkDir string
	Package string
	Version string
}

type CheckUpdateResult struct {
	Package     types.Package
	Current     bool
	Lock        types.LockRecord
	LockPresent bool
	Advisory    *core.MultipleMatchesAdvisory
}

func (r CheckUpdateResult) Message() string {
	if r.Current {
		return fmt.Sprintf("No new version is available. The project is already updated to version %s for %s",
			r.Package.PrettyVersion, r.Package.Name)
	}
	return fmt.Sprintf("A new version %s of %s is now available", r.Package.PrettyVersion, r.Package.Name)
}

type SelfUpdateResult struct {
	Package   types.Package
	TargetDir string
	// Applied is false when the lock already recorded the package.
	Applied  bool
	Lock     types.LockRecord
	Advisory *core.MultipleMatchesAdvisory
}

func (r SelfUpdateResult) Message() string {
	if !r.Applied {
		return fmt.Sprintf("Project is already patched with version %s for %s", r.Package.PrettyVersion, r.Package.Name)
	}
	return fmt.Sprintf("Project has been patched with version %s for %s", r.Package.PrettyVersion, r.Package.Name)
}
