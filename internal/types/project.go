package types

// SelfUpdateConfig holds the overrides read from the manifest's
// extra.self-update-plugin section.
type SelfUpdateConfig struct {
	Package string
	Require string
}

// Project is the subset of the project manifest the updater needs.
type Project struct {
	Dir              string
	Name             string
	MinimumStability Stability
	Repositories     []RepositoryConfig
	DisablePackagist bool
	SelfUpdate       SelfUpdateConfig
}

// PlaceholderProjectName is reported for manifests without a name.
const PlaceholderProjectName = "__root__"
