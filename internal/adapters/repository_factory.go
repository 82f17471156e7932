package adapters

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"project-updater/internal/ports"
	"project-updater/internal/shared"
	"project-updater/internal/types"
)

// RepositoryFactoryAdapter turns repository declarations into package
// sources sharing one HTTP configuration.
type RepositoryFactoryAdapter struct {
	HTTP     HTTPConfig
	Defaults []string
}

// NewRepositoryFactoryAdapter uses defaults as the Composer repositories
// to search without a project; an empty list means Packagist.
func NewRepositoryFactoryAdapter(cfg HTTPConfig, defaults []string) RepositoryFactoryAdapter {
	var cleaned []string
	for _, value := range defaults {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		cleaned = []string{PackagistURL}
	}
	return RepositoryFactoryAdapter{HTTP: cfg, Defaults: cleaned}
}

func (f RepositoryFactoryAdapter) InstalledSource(project types.Project) ports.PackageSourcePort {
	return NewInstalledRepositoryAdapter(project.Dir)
}

func (f RepositoryFactoryAdapter) ProjectSources(project types.Project) ([]ports.PackageSourcePort, error) {
	var sources []ports.PackageSourcePort
	for _, repo := range project.Repositories {
		location := shared.ResolveRelative(project.Dir, repo.URL)
		switch repo.Type {
		case types.RepositoryTypeComposer:
			sources = append(sources, NewComposerRepositoryAdapter(location, f.HTTP))
		case types.RepositoryTypeIndex:
			sources = append(sources, NewRepoIndexFileAdapter(location, f.HTTP))
		default:
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported repository type %q", repo.Type))
		}
	}
	if !project.DisablePackagist {
		sources = append(sources, NewComposerRepositoryAdapter(PackagistURL, f.HTTP))
	}
	return sources, nil
}

func (f RepositoryFactoryAdapter) DefaultSources() ([]ports.PackageSourcePort, error) {
	sources := make([]ports.PackageSourcePort, 0, len(f.Defaults))
	for _, location := range f.Defaults {
		sources = append(sources, NewComposerRepositoryAdapter(location, f.HTTP))
	}
	return sources, nil
}

var _ ports.RepositoryFactoryPort = RepositoryFactoryAdapter{}
