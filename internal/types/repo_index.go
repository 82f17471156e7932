package types

// RepoIndexFile is the YAML repository index format used by "index"
// repositories.
type RepoIndexFile struct {
	Packages map[string][]RepoIndexVersion `yaml:"packages"`
}

type RepoIndexVersion struct {
	Version string `yaml:"version"`
	Dist    Dist   `yaml:"dist"`
}

type RepositoryConfig struct {
	Type RepositoryType
	URL  string
}
