package ports

import (
	"context"

	"project-updater/internal/types"
)

// PackageSourcePort is one repository able to list every version of a
// named package it knows about.
type PackageSourcePort interface {
	Name() string
	FindPackages(ctx context.Context, name string) ([]types.Package, error)
}

// RepositoryFactoryPort builds the repository sources for a project,
// or the built-in defaults when there is no project.
type RepositoryFactoryPort interface {
	InstalledSource(project types.Project) PackageSourcePort
	ProjectSources(project types.Project) ([]PackageSourcePort, error)
	DefaultSources() ([]PackageSourcePort, error)
}
