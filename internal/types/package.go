package types

import "strings"

type Dist struct {
	Type      DistType `json:"type" yaml:"type"`
	URL       string   `json:"url" yaml:"url"`
	Reference string   `json:"reference,omitempty" yaml:"reference,omitempty"`
	Shasum    string   `json:"shasum,omitempty" yaml:"shasum,omitempty"`
}

// Package is a single resolved version of a named package as reported
// by one repository.
type Package struct {
	Name           string
	Version        string
	PrettyVersion  string
	Dist           Dist
	Stability      Stability
	Source         string
	SourcePriority int
}

// PrettyString renders the package the way status messages show it.
func (p Package) PrettyString() string {
	return p.Name + " " + p.PrettyVersion
}

// ShortName is the package name without its vendor namespace.
func ShortName(name string) string {
	if idx := strings.Index(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
