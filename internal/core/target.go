package core

import (
	"strings"

	"project-updater/internal/types"
)

// Target is the package name and version token an update works on.
type Target struct {
	Name         string
	VersionToken string
}

// ResolveTarget picks the package name and version token from the
// explicit arguments first, then the manifest overrides, then (for the
// name only) the project's own name. project is nil without a manifest.
func ResolveTarget(project *types.Project, nameArg string, versionArg string) (Target, error) {
	name := strings.TrimSpace(nameArg)
	version := strings.TrimSpace(versionArg)
	if project != nil {
		if name == "" {
			name = strings.TrimSpace(project.SelfUpdate.Package)
		}
		if name == "" {
			name = strings.TrimSpace(project.Name)
		}
		if version == "" {
			version = strings.TrimSpace(project.SelfUpdate.Require)
		}
	}
	if name == "" || name == types.PlaceholderProjectName {
		return Target{}, types.NewConfigurationError(
			`unable to determine the package name, add "extra.self-update-plugin.package" to the project manifest or pass --package`, nil)
	}
	if version == "" {
		return Target{}, types.NewConfigurationError(
			`unable to determine the package require version, add "extra.self-update-plugin.require" to the project manifest or pass a version`, nil)
	}
	return Target{Name: name, VersionToken: version}, nil
}
