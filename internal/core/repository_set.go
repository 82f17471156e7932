package core

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"project-updater/internal/ports"
	"project-updater/internal/types"
)

const (
	sourcePriorityLocal  = 0
	sourcePriorityRemote = 1
)

// RepositorySet is the read-only union of the local installed index and
// the remote sources. Results keep source order, local first.
type RepositorySet struct {
	Local  []ports.PackageSourcePort
	Remote []ports.PackageSourcePort
}

func NewRepositorySet(local []ports.PackageSourcePort, remote []ports.PackageSourcePort) RepositorySet {
	return RepositorySet{Local: local, Remote: remote}
}

func (r RepositorySet) Name() string {
	return "composite(" + strings.Join(r.Names(), ", ") + ")"
}

func (r RepositorySet) Names() []string {
	names := make([]string, 0, len(r.Local)+len(r.Remote))
	for _, source := range r.sources() {
		names = append(names, source.Name())
	}
	return names
}

// FindPackages queries every source concurrently and returns all
// packages whose name matches case-insensitively, annotated with their
// normalized version, stability and source priority.
func (r RepositorySet) FindPackages(ctx context.Context, name string) ([]types.Package, error) {
	sources := r.sources()
	results := make([][]types.Package, len(sources))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, source := range sources {
		priority := sourcePriorityRemote
		if i < len(r.Local) {
			priority = sourcePriorityLocal
		}
		group.Go(func() error {
			found, err := source.FindPackages(groupCtx, name)
			if err != nil {
				return err
			}
			results[i] = annotatePackages(found, name, source.Name(), priority)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	var merged []types.Package
	for _, found := range results {
		merged = append(merged, found...)
	}
	return merged, nil
}

func (r RepositorySet) sources() []ports.PackageSourcePort {
	all := make([]ports.PackageSourcePort, 0, len(r.Local)+len(r.Remote))
	all = append(all, r.Local...)
	return append(all, r.Remote...)
}

func annotatePackages(found []types.Package, name string, source string, priority int) []types.Package {
	var out []types.Package
	for _, pkg := range found {
		if !strings.EqualFold(pkg.Name, name) {
			continue
		}
		pkg.Name = strings.ToLower(pkg.Name)
		if strings.TrimSpace(pkg.PrettyVersion) == "" {
			pkg.PrettyVersion = pkg.Version
		}
		if strings.TrimSpace(pkg.PrettyVersion) == "" {
			continue
		}
		pkg.Version = NormalizeVersion(pkg.PrettyVersion)
		pkg.Stability = ClassifyStability(pkg.PrettyVersion)
		pkg.Source = source
		pkg.SourcePriority = priority
		out = append(out, pkg)
	}
	return out
}

var _ ports.PackageSourcePort = RepositorySet{}
